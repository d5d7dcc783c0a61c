package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Chinkyyadav26/QRcodeDecoder/internal/config"
)

// ErrInvalidChoice is returned when the menu answer is neither option.
var ErrInvalidChoice = errors.New("qrscan: invalid menu choice")

// runner is the part of scanner.Scanner the menu drives.
type runner interface {
	ScanWebcam(ctx context.Context) error
	ScanImage(ctx context.Context, path string) error
}

// selectMode asks for the scan mode and, for images, the path.
func selectMode(in *bufio.Reader, out io.Writer) (mode, path string, err error) {
	fmt.Fprintln(out, "Choose an option:")
	fmt.Fprintln(out, "1. Scan from Webcam")
	fmt.Fprintln(out, "2. Scan from Image")
	fmt.Fprint(out, "Enter your choice (1/2): ")

	choice, err := readLine(in)
	if err != nil {
		return "", "", err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return config.ModeWebcam, "", nil
	case "2":
		fmt.Fprint(out, "Enter the path to the image file: ")
		path, err := readLine(in)
		if err != nil {
			return "", "", err
		}
		return config.ModeImage, path, nil
	default:
		fmt.Fprintln(out, "Invalid choice. Exiting.")
		return "", "", fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
	}
}

// dispatch runs the scan selected by cfg, prompting first when no mode is set.
func dispatch(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer, r runner) error {
	mode, path := cfg.Mode, cfg.ImagePath
	reader := bufio.NewReader(in)

	if mode == config.ModeMenu {
		var err error
		mode, path, err = selectMode(reader, out)
		if err != nil {
			return err
		}
	} else if mode == config.ModeImage && path == "" {
		fmt.Fprint(out, "Enter the path to the image file: ")
		p, err := readLine(reader)
		if err != nil {
			return err
		}
		path = p
	}

	switch mode {
	case config.ModeWebcam:
		return r.ScanWebcam(ctx)
	case config.ModeImage:
		return r.ScanImage(ctx, path)
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalidChoice, mode)
	}
}

// readLine returns one line without its terminator. A final line without a
// newline is accepted; EOF before any input yields an empty line.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("qrscan: read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
