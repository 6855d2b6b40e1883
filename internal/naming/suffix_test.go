package naming

import "testing"

func TestStripSuffix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"suffixed", "photo_1.jpg", "photo.jpg"},
		{"double digit", "photo_12.jpg", "photo.jpg"},
		{"unsuffixed", "photo.jpg", "photo.jpg"},
		{"underscore without digits", "my_photo.jpg", "my_photo.jpg"},
		{"trailing underscore", "photo_.jpg", "photo_.jpg"},
		{"no extension", "clip_2", "clip"},
		{"digits in stem kept", "IMG_2024_1.jpg", "IMG_2024.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripSuffix(tt.in)
			if got != tt.want {
				t.Errorf("StripSuffix(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
