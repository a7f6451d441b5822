package internal

import "testing"

func TestClassifyContent(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantType    ContentType
		wantContent string
	}{
		{"empty", "", ContentEmpty, ""},
		{"whitespace only", "  \n\t ", ContentEmpty, ""},
		{"plain text", "hello there", ContentText, "hello there"},
		{"text is trimmed", "  hi  ", ContentText, "hi"},
		{"sticker", "[https://p16-sign.tiktokcdn.com/obj/sticker/happy%20cat.gif]", ContentSticker, "[Sticker: happy cat.gif]"},
		{"sticker png", "[https://cdn.example.com/s/wave.PNG]", ContentSticker, "[Sticker: wave.PNG]"},
		{"bracketed non image url", "[https://example.com/file.pdf]", ContentLink, "[Link: example.com/file.pdf]"},
		{"tiktok video", "https://www.tiktok.com/@someone/video/7312345678901234567", ContentMedia, "[Media: TikTok Video]"},
		{"tiktok short link in text", "lol https://vm.tiktok.com/ZMabc123/ watch", ContentMedia, "[Media: TikTok Video]"},
		{"youtube short", "https://youtube.com/shorts/abcDEF", ContentMedia, "[Media: YouTube Video]"},
		{"instagram reel", "https://www.instagram.com/reel/Cxyz/", ContentMedia, "[Media: Instagram Video]"},
		{"tiktok profile is a link", "https://www.tiktok.com/@someone", ContentLink, "[Link: www.tiktok.com/@someone]"},
		{"media url keeps content", "photo https://cdn.example.com/pics/beach.JPG", ContentMedia, "photo https://cdn.example.com/pics/beach.JPG"},
		{"media url with query", "https://cdn.example.com/v/clip.mp4?sig=1", ContentMedia, "https://cdn.example.com/v/clip.mp4?sig=1"},
		{"first link wins", "check https://example.com/articles/42?ref=dm and https://other.org/x", ContentLink, "[Link: example.com/articles/42]"},
		{"second url is media", "see https://example.com/page and https://img.example.com/a.png", ContentMedia, "see https://example.com/page and https://img.example.com/a.png"},
		{"bare host", "https://example.com", ContentLink, "[Link: example.com]"},
		{"trailing punctuation", "go to https://example.com/a.", ContentLink, "[Link: example.com/a]"},
		{"link placeholder", "[Link: example.com/articles/42]", ContentLink, "[Link: example.com/articles/42]"},
		{"media placeholder", "[Media: TikTok Video]", ContentMedia, "[Media: TikTok Video]"},
		{"sticker placeholder", "[Sticker: happy cat.gif]", ContentSticker, "[Sticker: happy cat.gif]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyContent(tt.input)
			if got.Type != tt.wantType {
				t.Errorf("ClassifyContent(%q).Type = %v, want %v", tt.input, got.Type, tt.wantType)
			}
			if got.Content != tt.wantContent {
				t.Errorf("ClassifyContent(%q).Content = %q, want %q", tt.input, got.Content, tt.wantContent)
			}
		})
	}
}

func TestClassifyContent_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain words",
		"[https://cdn.example.com/s/wave.gif]",
		"https://www.tiktok.com/@a/video/1",
		"https://cdn.example.com/pics/beach.jpg",
		"read https://example.com/articles/42 now",
		"https://example.com",
		"café",
		"look https://example.com/a%0Ab",
		"[https://cdn.example.com/s/hi%0Athere.png]",
		"[https://cdn.example.com/s/cafe%CC%81.png]",
	}

	for _, input := range inputs {
		first := ClassifyContent(input)
		second := ClassifyContent(first.Content)
		if second.Type != first.Type || second.Content != first.Content {
			t.Errorf("re-classifying %q changed result: %v/%q -> %v/%q", input, first.Type, first.Content, second.Type, second.Content)
		}
	}
}

func TestClassifyContent_Payload(t *testing.T) {
	sticker := ClassifyContent("[https://cdn.example.com/s/wave.gif]")
	if sticker.Payload == nil || sticker.Payload.Filename != "wave.gif" {
		t.Errorf("sticker payload = %+v, want filename wave.gif", sticker.Payload)
	}

	video := ClassifyContent("https://vt.tiktok.com/ZS123/")
	if video.Payload == nil || video.Payload.Platform != "TikTok" {
		t.Errorf("video payload = %+v, want platform TikTok", video.Payload)
	}

	link := ClassifyContent("https://example.com/a")
	if link.Payload == nil || link.Payload.URL != "https://example.com/a" {
		t.Errorf("link payload = %+v, want URL", link.Payload)
	}

	if text := ClassifyContent("hi"); text.Payload != nil {
		t.Errorf("text payload = %+v, want nil", text.Payload)
	}
}
