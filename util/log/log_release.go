//go:build release

package log

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dixieflatline76/Carver/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	path, err := FilePath(runtime.GOOS)
	if err != nil {
		log.Fatalf("Cannot place carver log: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatalf("Cannot create %s: %v", filepath.Dir(path), err)
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	})
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("%s %s started, settings from %s", config.AppName, config.AppVersion, config.GetFilename())
}

// SetDebug is a no-op in release builds.
func SetDebug(enabled bool) {}

// Print calls the standard log.Print()
func Print(v ...interface{}) {
	log.Output(2, fmt.Sprint(v...))
}

// Printf calls the standard log.Printf()
func Printf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
}

// Println calls the standard log.Println()
func Println(v ...interface{}) {
	log.Output(2, fmt.Sprintln(v...))
}

// Fatal calls the standard log.Fatal()
func Fatal(v ...interface{}) {
	log.Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf calls the standard log.Fatalf()
func Fatalf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Debug is compiled out of release builds.
func Debug(v ...interface{}) {}

// Debugf is compiled out of release builds.
func Debugf(format string, v ...interface{}) {}
