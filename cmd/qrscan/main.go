// qrscan - detect and decode QR codes from a webcam or an image file
//
// Decoded payloads are printed to stdout, one line per code per frame, and
// drawn onto the frame shown in the scanner window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Chinkyyadav26/QRcodeDecoder/internal/config"
	"github.com/Chinkyyadav26/QRcodeDecoder/internal/log"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/annotate"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/capture"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/debug"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/qr"
	"github.com/Chinkyyadav26/QRcodeDecoder/pkg/scanner"
)

func main() {
	cfg := config.DefaultConfig()

	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "Scan mode: webcam or image (default: ask; image asks for a path unless -image is set)")
	flag.StringVar(&cfg.ImagePath, "image", cfg.ImagePath, "Image file to scan (implies -mode image)")
	flag.IntVar(&cfg.DeviceID, "device", cfg.DeviceID, "Camera index")
	flag.StringVar(&cfg.Preset, "preset", cfg.Preset, "Camera preset: "+strings.Join(capture.PresetNames(), ", "))
	flag.StringVar(&cfg.Decoder, "decoder", cfg.Decoder, "QR decoder: "+strings.Join(qr.Backends(), ", "))
	flag.StringVar(&cfg.Payload, "payload", cfg.Payload, "Non-UTF-8 payload handling: strict, replace, latin1")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "Result format: text or json")
	flag.StringVar(&cfg.QuitKey, "quit-key", cfg.QuitKey, "Key that stops the webcam scan")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug output")
	flag.BoolVar(&cfg.DebugFrames, "debug-frames", cfg.DebugFrames, "Enable per-frame debug output (very verbose)")
	flag.Parse()

	if cfg.ImagePath != "" && cfg.Mode == config.ModeMenu {
		cfg.Mode = config.ModeImage
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e)
		}
		flag.Usage()
		os.Exit(1)
	}

	debug.Enabled = cfg.Debug
	debug.Frames = cfg.DebugFrames
	log.Init(log.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	dec, err := qr.New(cfg.Decoder)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer dec.Close()

	reporter, err := annotate.NewReporter(cfg.Format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ann := annotate.New(dec,
		annotate.WithReporter(reporter),
		annotate.WithPayloadPolicy(cfg.PayloadPolicy()),
	)
	s := scanner.New(ann,
		scanner.WithCamera(cfg.Camera()),
		scanner.WithQuitKey(cfg.Quit()),
		scanner.WithLogger(log.L()),
	)

	// Handle Ctrl+C: stop the loop so the camera is released
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		// A second signal ends the process even while blocked on a key wait
		<-sigChan
		os.Exit(130)
	}()

	debug.Log("🔧 decoder=%s payload=%s preset=%s device=%d\n", cfg.Decoder, cfg.Payload, cfg.Preset, cfg.DeviceID)

	// Handled errors were already reported on the console
	if err := dispatch(ctx, cfg, os.Stdin, os.Stdout, s); err != nil {
		log.Debug("scan ended with error", "error", err)
	}
}
