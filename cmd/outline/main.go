// Command outline converts every PNG in a directory into a transparent
// black-line template suitable for the doodle pad.
package main

import (
	"flag"

	"github.com/Nubit3/trex-art/outline"
	"github.com/sirupsen/logrus"
)

func main() {
	dir := flag.String("dir", ".", "Directory containing the source PNG files.")
	suffix := flag.String("suffix", "-outline", "Suffix appended to generated file names.")
	threshold := flag.Uint("threshold", uint(outline.DefaultOptions.Threshold), "Edge strength (0-255) a pixel needs to become part of the outline.")
	blurRadius := flag.Float64("blur", outline.DefaultOptions.BlurRadius, "Gaussian blur radius applied before edge detection.")
	dilate := flag.Float64("dilate", outline.DefaultOptions.DilateRadius, "Dilation radius used to thicken lines.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if *threshold > 255 {
		logrus.Fatalf("Invalid threshold %d: must be at most 255", *threshold)
	}

	written, err := outline.ProcessDir(*dir, *suffix, outline.Options{
		BlurRadius:   *blurRadius,
		Threshold:    uint8(*threshold),
		DilateRadius: *dilate,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to generate outlines")
	}
	if len(written) == 0 {
		logrus.WithField("dir", *dir).Warn("No PNG files found")
		return
	}
	logrus.WithField("count", len(written)).Info("Outlines generated")
}
