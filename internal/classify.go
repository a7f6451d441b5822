package internal

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Content already rewritten by a previous pass.
	placeholderPattern = regexp.MustCompile(`(?s)^\[(Sticker|Media|Link): .*\]$`)

	// A whole message consisting of one bracketed URL, as stickers are exported.
	bracketedURLPattern = regexp.MustCompile(`^\[(https?://[^\s\]]+)\]$`)

	urlPattern = regexp.MustCompile(`https?://[^\s<>"\]\[]+`)

	stickerExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
	mediaExtensions   = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".mp4", ".mov", ".avi"}

	videoPlatforms = []struct {
		name    string
		pattern *regexp.Regexp
	}{
		{"TikTok", regexp.MustCompile(`(?i)https?://(?:(?:www|m)\.)?tiktok\.com/@[^/\s]+/video/\d+\S*`)},
		{"TikTok", regexp.MustCompile(`(?i)https?://(?:vm|vt)\.tiktok\.com/\S+`)},
		{"YouTube", regexp.MustCompile(`(?i)https?://(?:(?:www|m)\.)?youtube\.com/shorts/\S+`)},
		{"Instagram", regexp.MustCompile(`(?i)https?://(?:www\.)?instagram\.com/reels?/\S+`)},
		{"Snapchat", regexp.MustCompile(`(?i)https?://(?:www\.)?snapchat\.com/spotlight/\S+`)},
	}
)

// Classification is the outcome of classifying one message body
type Classification struct {
	Type    ContentType
	Content string
	Payload *Payload
}

// ClassifyContent decides a message's type and display string. Rules are
// applied in order and the first match wins. Classifying the output again
// yields the same result.
func ClassifyContent(content string) Classification {
	content = norm.NFC.String(strings.TrimSpace(content))
	if content == "" {
		return Classification{Type: ContentEmpty}
	}

	if m := placeholderPattern.FindStringSubmatch(content); m != nil {
		return Classification{Type: placeholderType(m[1]), Content: content}
	}

	if m := bracketedURLPattern.FindStringSubmatch(content); m != nil {
		if name, ok := stickerFilename(m[1]); ok {
			return Classification{
				Type:    ContentSticker,
				Content: "[Sticker: " + name + "]",
				Payload: &Payload{URL: m[1], Filename: name},
			}
		}
	}

	for _, platform := range videoPlatforms {
		if link := platform.pattern.FindString(content); link != "" {
			return Classification{
				Type:    ContentMedia,
				Content: "[Media: " + platform.name + " Video]",
				Payload: &Payload{URL: link, Platform: platform.name},
			}
		}
	}

	links := urlPattern.FindAllString(content, -1)
	if len(links) == 0 {
		return Classification{Type: ContentText, Content: content}
	}
	for i := range links {
		links[i] = strings.TrimRight(links[i], ".,;:!?)'")
	}

	for _, link := range links {
		if hasExtension(urlPath(link), mediaExtensions) {
			return Classification{Type: ContentMedia, Content: content, Payload: &Payload{URL: link}}
		}
	}

	return Classification{
		Type:    ContentLink,
		Content: "[Link: " + linkLabel(links[0]) + "]",
		Payload: &Payload{URL: links[0]},
	}
}

func placeholderType(kind string) ContentType {
	switch kind {
	case "Sticker":
		return ContentSticker
	case "Media":
		return ContentMedia
	default:
		return ContentLink
	}
}

// stickerFilename returns the decoded last path segment if it names an image
func stickerFilename(raw string) (string, bool) {
	p := urlPath(raw)
	if !hasExtension(p, stickerExtensions) {
		return "", false
	}
	name := path.Base(p)
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return norm.NFC.String(name), true
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		if i := strings.IndexAny(raw, "?#"); i >= 0 {
			return raw[:i]
		}
		return raw
	}
	return u.Path
}

func linkLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	}
	return norm.NFC.String(u.Host + u.Path)
}

func hasExtension(p string, extensions []string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
