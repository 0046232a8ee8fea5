// Package docs embeds the user documentation of pcal, one markdown file per topic.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing all the others.
const index = "readme"

// GetTopic returns the content of a documentation topic.
//
// The topic "*" returns all topics, "" returns the index.
func GetTopic(topic string) (string, error) {
	switch topic = strings.TrimSpace(strings.ToLower(topic)); topic {
	case "*":
		return GetTopics("*")
	case "":
		topic = index
	}

	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of several topics, separated by a blank line.
// A "*" expands to every topic.
func GetTopics(topics ...string) (string, error) {
	var names []string
	for _, topic := range topics {
		if topic != "*" {
			names = append(names, topic)
			continue
		}
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		names = append(names, all...)
	}

	var b bytes.Buffer
	for _, name := range names {
		content, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted names of all topics, the index excluded.
func GetAllTopics() ([]string, error) {
	entries, err := fs.ReadDir(docs, ".")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		if base := strings.TrimSuffix(e.Name(), ".md"); base != index {
			topics = append(topics, base)
		}
	}
	slices.Sort(topics)
	return topics, nil
}
