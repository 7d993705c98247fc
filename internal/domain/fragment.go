package domain

type FragmentKind string

const (
	FragmentText    FragmentKind = "text"
	FragmentImage   FragmentKind = "image"
	FragmentAudio   FragmentKind = "audio"
	FragmentVideo   FragmentKind = "video"
	FragmentFile    FragmentKind = "file"
	FragmentQuote   FragmentKind = "quote"
	FragmentMention FragmentKind = "mention"
	FragmentHTML    FragmentKind = "html"
)

// Fragment is one unit of multi-modal output. Source holds the text, the
// media URL, the quoted message id, the mentioned user id or the markup,
// depending on Kind. Data is set on images produced by the renderer.
type Fragment struct {
	Kind     FragmentKind
	Source   string
	Data     []byte
	MimeType string
}

func TextFragment(text string) Fragment { return Fragment{Kind: FragmentText, Source: text} }

func ImageFragment(src string) Fragment { return Fragment{Kind: FragmentImage, Source: src} }

func AudioFragment(src string) Fragment { return Fragment{Kind: FragmentAudio, Source: src} }

func VideoFragment(src string) Fragment { return Fragment{Kind: FragmentVideo, Source: src} }

func FileFragment(src string) Fragment { return Fragment{Kind: FragmentFile, Source: src} }

func QuoteFragment(messageID string) Fragment {
	return Fragment{Kind: FragmentQuote, Source: messageID}
}

func MentionFragment(userID string) Fragment {
	return Fragment{Kind: FragmentMention, Source: userID}
}

func HTMLFragment(markup string) Fragment { return Fragment{Kind: FragmentHTML, Source: markup} }

// RenderedImage wraps renderer output as an inline image fragment.
func RenderedImage(data []byte) Fragment {
	return Fragment{Kind: FragmentImage, Data: data, MimeType: "image/png"}
}

func (f Fragment) Inline() bool { return len(f.Data) > 0 }
