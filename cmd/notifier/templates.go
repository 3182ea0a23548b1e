package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"bimbingan_service/internal/notification"
)

type templatesFile struct {
	Templates map[string]string `yaml:"templates"`
}

// Templates maps a notification kind to its message text. Placeholders are {1}..{n}.
type Templates map[notification.Kind]string

func LoadTemplates(path string) (Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTemplates(data)
}

func ParseTemplates(data []byte) (Templates, error) {
	var file templatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	templates := make(Templates, len(file.Templates))
	for kind, text := range file.Templates {
		k := notification.Kind(kind)
		if !k.IsValid() {
			return nil, fmt.Errorf("unknown notification kind %q", kind)
		}
		templates[k] = strings.TrimSpace(text)
	}
	return templates, nil
}

func (t Templates) Render(kind notification.Kind, args ...string) (string, error) {
	text, ok := t[kind]
	if !ok {
		return "", fmt.Errorf("no template for kind %q", kind)
	}

	pairs := make([]string, 0, 2*len(args))
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i+1)+"}", arg)
	}
	return strings.NewReplacer(pairs...).Replace(text), nil
}
