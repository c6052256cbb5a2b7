package validation

import (
	"errors"
	"testing"
)

func TestValidTaskName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"read", true},
		{"  go for a run  ", true},
		{"x", false},
		{"", false},
		{"hack <script>", false},
		{"ping @everyone", false},
		{string(make([]byte, 101)), false},
	}
	for _, tt := range tests {
		if got := ValidTaskName(tt.name); got != tt.want {
			t.Errorf("ValidTaskName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Ana", true},
		{"Mary Jane", true},
		{"José 2", true},
		{"A", false},
		{"x_x", false},
		{"no!", false},
	}
	for _, tt := range tests {
		if got := ValidDisplayName(tt.name); got != tt.want {
			t.Errorf("ValidDisplayName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidTimezone(t *testing.T) {
	if !ValidTimezone("Europe/London") {
		t.Error("Europe/London should be valid")
	}
	if ValidTimezone("Mars/Base") || ValidTimezone("") {
		t.Error("invalid zones accepted")
	}
}

func TestStructCustomTags(t *testing.T) {
	type input struct {
		Name string `validate:"required,taskname"`
		Who  string `validate:"omitempty,displayname"`
	}
	if err := Struct(input{Name: "read", Who: "Ana"}); err != nil {
		t.Fatalf("valid input: %v", err)
	}
	err := Struct(input{Name: "r"})
	var verr *Error
	if !errors.As(err, &verr) || verr.Field != "Name" || verr.Tag != "taskname" {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckImage(t *testing.T) {
	tests := []struct {
		name string
		img  Image
		want error
	}{
		{"ok", Image{FileName: "proof.jpg", MimeType: "image/jpeg", Size: 1024}, nil},
		{"bad type", Image{FileName: "proof.pdf", MimeType: "application/pdf", Size: 1024}, ErrImageType},
		{"too big", Image{FileName: "proof.png", MimeType: "image/png", Size: 11 * 1024 * 1024}, ErrImageTooLarge},
		{"suspicious name", Image{FileName: "proof.exe", MimeType: "image/png", Size: 10}, ErrImageName},
		{"photo without a name", Image{MimeType: "image/jpeg", Size: 10}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckImage(tt.img, 10)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
