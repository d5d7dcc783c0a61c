package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Chinkyyadav26/QRcodeDecoder/internal/config"
)

// fakeRunner records which scan was started.
type fakeRunner struct {
	webcam int
	images []string
	err    error
}

func (f *fakeRunner) ScanWebcam(ctx context.Context) error {
	f.webcam++
	return f.err
}

func (f *fakeRunner) ScanImage(ctx context.Context, path string) error {
	f.images = append(f.images, path)
	return f.err
}

const menuText = "Choose an option:\n1. Scan from Webcam\n2. Scan from Image\nEnter your choice (1/2): "

func TestDispatch_Menu(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantWebcam int
		wantImages []string
		wantOut    string
		wantErr    error
	}{
		{
			name:       "webcam",
			input:      "1\n",
			wantWebcam: 1,
			wantOut:    menuText,
		},
		{
			name:       "image",
			input:      "2\n/tmp/code.png\n",
			wantImages: []string{"/tmp/code.png"},
			wantOut:    menuText + "Enter the path to the image file: ",
		},
		{
			name:       "image path with spaces and CRLF",
			input:      "2\r\nmy codes/a b.jpg\r\n",
			wantImages: []string{"my codes/a b.jpg"},
			wantOut:    menuText + "Enter the path to the image file: ",
		},
		{
			name:       "choice without trailing newline",
			input:      "1",
			wantWebcam: 1,
			wantOut:    menuText,
		},
		{
			name:    "invalid choice",
			input:   "3\n",
			wantOut: menuText + "Invalid choice. Exiting.\n",
			wantErr: ErrInvalidChoice,
		},
		{
			name:    "empty input",
			input:   "",
			wantOut: menuText + "Invalid choice. Exiting.\n",
			wantErr: ErrInvalidChoice,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			r := &fakeRunner{}

			err := dispatch(context.Background(), config.DefaultConfig(), strings.NewReader(tc.input), &out, r)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("dispatch failed: %v", err)
			}
			if out.String() != tc.wantOut {
				t.Errorf("output: got %q, want %q", out.String(), tc.wantOut)
			}
			if r.webcam != tc.wantWebcam {
				t.Errorf("webcam scans: got %d, want %d", r.webcam, tc.wantWebcam)
			}
			if strings.Join(r.images, "|") != strings.Join(tc.wantImages, "|") {
				t.Errorf("image scans: got %v, want %v", r.images, tc.wantImages)
			}
		})
	}
}

func TestDispatch_FlagsSkipMenu(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeImage
	cfg.ImagePath = "code.png"

	var out bytes.Buffer
	r := &fakeRunner{}
	if err := dispatch(context.Background(), cfg, strings.NewReader(""), &out, r); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("no prompt expected, got %q", out.String())
	}
	if len(r.images) != 1 || r.images[0] != "code.png" {
		t.Errorf("image scans: got %v", r.images)
	}

	cfg = config.DefaultConfig()
	cfg.Mode = config.ModeWebcam
	r = &fakeRunner{}
	if err := dispatch(context.Background(), cfg, strings.NewReader(""), &out, r); err != nil {
		t.Fatal(err)
	}
	if r.webcam != 1 {
		t.Errorf("webcam scans: got %d, want 1", r.webcam)
	}
}

func TestDispatch_ImageModePromptsForPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeImage
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Fatalf("-mode image without -image should be accepted, got %v", errs)
	}

	var out bytes.Buffer
	r := &fakeRunner{}
	if err := dispatch(context.Background(), cfg, strings.NewReader("x.png\n"), &out, r); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Enter the path to the image file: " {
		t.Errorf("output: got %q", out.String())
	}
	if len(r.images) != 1 || r.images[0] != "x.png" {
		t.Errorf("image scans: got %v", r.images)
	}
}

func TestDispatch_PropagatesScanError(t *testing.T) {
	boom := errors.New("boom")
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeWebcam

	err := dispatch(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &fakeRunner{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("expected scan error, got %v", err)
	}
}
