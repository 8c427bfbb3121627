// Command carve_report renders an HTML page comparing seam carving with
// smart cropping and plain scaling for every image in a directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dixieflatline76/Carver/pkg/carver"
	"github.com/dixieflatline76/Carver/pkg/compare"
	"github.com/dixieflatline76/Carver/pkg/face"
	"github.com/dixieflatline76/Carver/pkg/loader"
	"github.com/dixieflatline76/Carver/util"
	"github.com/dixieflatline76/Carver/util/log"
)

func main() {
	sourceDir := flag.String("input", filepath.Join("test_assets", "tuning_images"), "directory of source images")
	outputDir := flag.String("output", "report_output", "directory for the report")
	scale := flag.Float64("scale", 0.75, "target width as a fraction of the source width")
	cascade := flag.String("cascade", "", "optional pigo facefinder cascade for face protection")
	flag.Parse()

	log.Println("Starting Carve Report Generator...")

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	opts := carver.Options{}
	if *cascade != "" {
		d, err := face.LoadDetector(*cascade, face.DefaultTuning())
		if err != nil {
			log.Printf("Warning: %v. Face protection will be disabled.", err)
		} else {
			opts.Protector = d
			log.Println("Face Detection Model Loaded.")
		}
	}
	processor := compare.NewProcessor(opts)

	files, err := os.ReadDir(*sourceDir)
	if err != nil {
		log.Fatalf("Failed to read source directory %s: %v", *sourceDir, err)
	}

	var page strings.Builder
	page.WriteString(`<html><head><style>
		body { font-family: sans-serif; background: #222; color: #eee; padding: 20px; }
		.test-case { margin-bottom: 50px; border-bottom: 1px solid #444; padding-bottom: 20px; }
		h2 { color: #f0a500; }
		.grid { display: grid; grid-template-columns: repeat(5, 1fr); gap: 10px; }
		.cell { text-align: center; }
		img { max-width: 100%; height: auto; border: 2px solid #555; }
		.label { margin-top: 5px; font-size: 0.9em; color: #aaa; }
		.meta { font-size: 0.8em; color: #777; }
	</style></head><body><h1>Carve Report</h1>`)

	ctx := context.Background()
	processed := 0
	for _, f := range files {
		if f.IsDir() || !loader.IsImage(f.Name()) {
			continue
		}
		srcPath := filepath.Join(*sourceDir, f.Name())
		name := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
		log.Printf("Processing %s...", name)

		src, err := loader.Open(srcPath)
		if err != nil {
			log.Printf("Failed to open %s: %v", srcPath, err)
			continue
		}
		w, h := src.Bounds().Dx(), src.Bounds().Dy()
		tw := util.Clamp(int(float64(w)**scale), 1, w)

		page.WriteString(fmt.Sprintf(`<div class="test-case"><h2>%s</h2><div class="grid">`, html.EscapeString(name)))

		origName := name + "_original.png"
		if err := loader.Save(src, filepath.Join(*outputDir, origName), 95); err != nil {
			log.Printf("Failed to copy %s: %v", srcPath, err)
		}
		page.WriteString(cell(origName, "Original", fmt.Sprintf("%dx%d", w, h)))

		variants, err := processor.Variants(ctx, src, tw, h)
		if err != nil {
			log.Printf("Error processing %s: %v", name, err)
			page.WriteString(fmt.Sprintf(`<div class="cell" style="color:#ff6b6b">Error: %s</div>`, html.EscapeString(err.Error())))
		}
		for _, v := range variants {
			if v.Err != nil {
				log.Printf("Error processing %s [%s]: %v", name, v.Name, v.Err)
				page.WriteString(fmt.Sprintf(`<div class="cell" style="color:#ff6b6b">%s: %s</div>`, v.Name, html.EscapeString(v.Err.Error())))
				continue
			}
			filename := fmt.Sprintf("%s_%s.jpg", name, sanitize(v.Name))
			if err := loader.Save(v.Image, filepath.Join(*outputDir, filename), 90); err != nil {
				log.Printf("Error saving %s: %v", filename, err)
				continue
			}
			meta := fmt.Sprintf("%dx%d<br>%v", v.Image.Bounds().Dx(), v.Image.Bounds().Dy(), v.Duration.Round(time.Millisecond))
			page.WriteString(cell(filename, v.Name, meta))
		}
		page.WriteString(`</div></div>`)
		processed++
	}

	if processed == 0 {
		log.Fatalf("No images found in %s", *sourceDir)
	}
	page.WriteString(`</body></html>`)

	reportPath := filepath.Join(*outputDir, "report.html")
	if err := os.WriteFile(reportPath, []byte(page.String()), 0644); err != nil {
		log.Fatalf("Failed to save report: %v", err)
	}
	log.Printf("Report generated successfully at %s", reportPath)
}

func cell(src, label, meta string) string {
	return fmt.Sprintf(`
			<div class="cell">
				<img src="%s" />
				<div class="label">%s</div>
				<div class="meta">%s</div>
			</div>`, src, label, meta)
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")
	return s
}
