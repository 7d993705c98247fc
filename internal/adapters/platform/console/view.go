package console

import (
	"fmt"
	"strings"

	"github.com/bnema/scriptbridge/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const htmlPreviewLimit = 60

// renderMessage lays one outgoing message out for a terminal. locations maps
// fragment index to the artifact path of inline images.
func renderMessage(author string, fragments []domain.Fragment, locations map[int]string, s styles) string {
	lines := []string{s.author.Render(author)}

	var text strings.Builder
	flush := func() {
		if text.Len() == 0 {
			return
		}
		lines = append(lines, s.text.Render(text.String()))
		text.Reset()
	}

	for i, f := range fragments {
		switch f.Kind {
		case domain.FragmentText:
			text.WriteString(f.Source)
			continue
		case domain.FragmentMention:
			text.WriteString(s.mention.Render("@" + f.Source))
			continue
		}

		flush()
		lines = append(lines, renderAttachment(f, locations[i], s))
	}
	flush()

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAttachment(f domain.Fragment, location string, s styles) string {
	switch f.Kind {
	case domain.FragmentQuote:
		return s.quote.Render("> reply to " + f.Source)
	case domain.FragmentHTML:
		return s.html.Render("[html] " + preview(f.Source))
	case domain.FragmentImage, domain.FragmentAudio, domain.FragmentVideo, domain.FragmentFile:
		src := f.Source
		if f.Inline() {
			src = location
			if src == "" {
				src = fmt.Sprintf("%d bytes %s", len(f.Data), f.MimeType)
			}
		}
		return s.media.Render(fmt.Sprintf("[%s] %s", f.Kind, src))
	default:
		return s.meta.Render(fmt.Sprintf("[%s]", f.Kind))
	}
}

func preview(markup string) string {
	flat := strings.Join(strings.Fields(markup), " ")
	runes := []rune(flat)
	if len(runes) <= htmlPreviewLimit {
		return flat
	}
	return string(runes[:htmlPreviewLimit]) + "…"
}

// plainContent is the text a sent message keeps in history.
func plainContent(fragments []domain.Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		switch f.Kind {
		case domain.FragmentText:
			b.WriteString(f.Source)
		case domain.FragmentMention:
			b.WriteString("@" + f.Source)
		}
	}
	return b.String()
}

func quoteOf(fragments []domain.Fragment) string {
	for _, f := range fragments {
		if f.Kind == domain.FragmentQuote {
			return f.Source
		}
	}
	return ""
}
