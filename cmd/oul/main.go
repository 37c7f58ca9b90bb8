// Command oul runs the Oul AAC communication app.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mohamadomran/Oul/internal/app"
	"github.com/mohamadomran/Oul/internal/catalog"
	"github.com/mohamadomran/Oul/internal/doctor"
)

func main() {
	config := app.DefaultConfig()

	assetsDir := flag.String("assets", config.AssetsDir, "directory holding the bundled audio files")
	mockAudio := flag.Bool("mock-audio", false, "use the mock sound player (no audio device)")
	runDoctor := flag.Bool("doctor", false, "verify the bundled audio assets and exit")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.GetVersionInfo().FullString())
		return
	}

	if *runDoctor {
		os.Exit(runDoctorChecks(*assetsDir))
	}

	config.AssetsDir = *assetsDir
	config.UseMockAudio = *mockAudio

	application, err := app.NewApplication(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "oul: %v\n", err)
		os.Exit(1)
	}
	defer application.Shutdown()

	application.Run()
}

func runDoctorChecks(assetsDir string) int {
	cat, err := catalog.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "oul: %v\n", err)
		return 1
	}

	report := doctor.Run(cat, assetsDir)
	fmt.Println(report.String())

	if !report.OK() {
		fmt.Fprintf(os.Stderr, "%d check(s) failed\n", report.Failures())
		return 1
	}
	return 0
}
