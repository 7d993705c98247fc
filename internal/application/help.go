package application

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed help.yaml
var helpYAML []byte

const (
	helpColumnWidth = 12
	helpColumns     = 7
)

type helpTopic struct {
	Name string `yaml:"name"`
	Body string `yaml:"body"`
}

type helpFile struct {
	Overview string      `yaml:"overview"`
	Topics   []helpTopic `yaml:"topics"`
}

// HelpCatalog holds the help topics shown to scripts, in catalogue order.
type HelpCatalog struct {
	overview string
	names    []string
	bodies   map[string]string
}

func LoadHelpCatalog() (*HelpCatalog, error) {
	return ParseHelpCatalog(helpYAML)
}

func ParseHelpCatalog(data []byte) (*HelpCatalog, error) {
	var file helpFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode help catalogue: %w", err)
	}

	catalog := &HelpCatalog{
		overview: strings.TrimSpace(file.Overview),
		bodies:   make(map[string]string, len(file.Topics)),
	}
	for _, topic := range file.Topics {
		name := strings.TrimSpace(topic.Name)
		if name == "" {
			return nil, fmt.Errorf("help topic without name")
		}
		if _, dup := catalog.bodies[name]; dup {
			return nil, fmt.Errorf("duplicate help topic %q", name)
		}
		catalog.names = append(catalog.names, name)
		catalog.bodies[name] = strings.TrimSpace(topic.Body)
	}

	return catalog, nil
}

func (c *HelpCatalog) Overview() string {
	return c.overview
}

func (c *HelpCatalog) Topic(name string) (string, bool) {
	body, ok := c.bodies[name]
	return body, ok
}

func (c *HelpCatalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Listing lays the topic names out in rows of seven, each name padded to
// twelve columns.
func (c *HelpCatalog) Listing() string {
	var b strings.Builder
	for i, name := range c.names {
		b.WriteString(name)
		if (i+1)%helpColumns == 0 {
			b.WriteByte('\n')
			continue
		}
		if pad := helpColumnWidth - len(name); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}

// TopicHTML renders a topic's Markdown body as an HTML document.
func (c *HelpCatalog) TopicHTML(name string) (string, bool, error) {
	body, ok := c.bodies[name]
	if !ok {
		return "", false, nil
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte("### "+name+"\n\n"+body), &buf); err != nil {
		return "", true, fmt.Errorf("render help topic: %w", err)
	}

	return `<html><div style="` + TextStyle.String() + `">` + buf.String() + `</div></html>`, true, nil
}
