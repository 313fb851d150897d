package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"

	"github.com/ZuhairUmer/auto-captioner-free/internal/caption"
)

const (
	exportFontName = "Times New Roman"
	exportFontSize = 13
)

// exportTranscript writes the transcript and cue sheet next to the rendered
// video for review. Export failure never fails the pipeline.
func (p *implProcessor) exportTranscript(ctx context.Context, videoPath, transcript string, cues []caption.Cue) {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	docxPath := filepath.Join(p.cfg.Paths.Output, base+"_transcript.docx")

	if err := writeTranscriptDocx(base, transcript, cues, docxPath); err != nil {
		p.logger.Warn(ctx, "Failed to export transcript: %v", err)
		return
	}
	p.logger.Info(ctx, "Transcript exported: %s", docxPath)
}

func writeTranscriptDocx(title, transcript string, cues []caption.Cue, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	titleRun := doc.AddParagraph("").AddText(title).Font(exportFontName).Size(16).Color("000000")
	titleRun.Bold(true)
	doc.AddParagraph("")

	for _, line := range strings.Split(strings.TrimSpace(transcript), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc.AddParagraph("").AddText(line).Font(exportFontName).Size(exportFontSize).Color("000000")
	}

	doc.AddParagraph("")
	headingRun := doc.AddParagraph("").AddText("Cue sheet").Font(exportFontName).Size(14).Color("000000")
	headingRun.Bold(true)

	for _, cue := range cues {
		entry := fmt.Sprintf("[%s - %s]  %s", formatTimestamp(cue.Start), formatTimestamp(cue.End), cue.Text)
		doc.AddParagraph("").AddText(entry).Font(exportFontName).Size(exportFontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

// formatTimestamp renders seconds as MM:SS.mmm.
func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds) / 60
	rest := seconds - float64(minutes*60)
	return fmt.Sprintf("%02d:%06.3f", minutes, rest)
}
