package transform

import (
	"strings"
	"testing"
)

func TestImagesToStorage_BasicImage(t *testing.T) {
	out, err := ImagesToStorage(`<p><img src="http://x/a.png" alt="A"></p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, `<ri:url ri:value="http://x/a.png" />`) {
		t.Errorf("missing url reference in %q", out)
	}
	if !strings.Contains(out, `ac:alt="A"`) {
		t.Errorf("missing alt text in %q", out)
	}
	if !strings.HasPrefix(out, "<p>") || !strings.HasSuffix(out, "</p>") {
		t.Errorf("surrounding <p> not preserved in %q", out)
	}
	if strings.Contains(out, "<img") {
		t.Errorf("img element not replaced in %q", out)
	}
}

func TestImagesToStorage_FixedStyle(t *testing.T) {
	out, err := ImagesToStorage(`<img src="http://x/a.png">`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `ac:align="center"`) || !strings.Contains(out, `ac:layout="full-width"`) {
		t.Errorf("expected centered full-width embed, got %q", out)
	}
}

func TestImagesToStorage_MissingAttributes(t *testing.T) {
	out, err := ImagesToStorage(`<img>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A src-less image still yields a well-formed embed.
	if !strings.Contains(out, `<ri:url ri:value="" />`) {
		t.Errorf("expected empty url reference, got %q", out)
	}
	if !strings.Contains(out, `ac:alt=""`) {
		t.Errorf("expected empty alt, got %q", out)
	}
}

func TestImagesToStorage_EscapesQuotes(t *testing.T) {
	out, err := ImagesToStorage(`<img src='http://x/a.png?q="v"' alt='say "hi"'>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `ri:value="http://x/a.png?q=&quot;v&quot;"`) {
		t.Errorf("src quotes not escaped in %q", out)
	}
	if !strings.Contains(out, `ac:alt="say &quot;hi&quot;"`) {
		t.Errorf("alt quotes not escaped in %q", out)
	}
}

func TestImagesToStorage_MultipleImages(t *testing.T) {
	out, err := ImagesToStorage(`<div><img src="http://x/1.png" alt="one"><p>text</p><img src="http://x/2.png" alt="two"></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out, "<ac:image") != 2 {
		t.Errorf("expected 2 embeds, got %q", out)
	}
	if !strings.Contains(out, "<p>text</p>") {
		t.Errorf("non-image markup not preserved in %q", out)
	}
}

func TestImagesToStorage_NoImagesPassesThrough(t *testing.T) {
	in := `<h2>Overview</h2><ul><li>item</li></ul>`
	out, err := ImagesToStorage(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Errorf("expected passthrough, got %q", out)
	}
}

func TestImagesToStorage_EntitiesPreserved(t *testing.T) {
	out, err := ImagesToStorage(`<p>a &amp; b</p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "a &amp; b") {
		t.Errorf("entity not preserved in %q", out)
	}
}

func TestImagesToStorage_MalformedHTMLDoesNotFail(t *testing.T) {
	out, err := ImagesToStorage(`<p><div>misnested<img src="http://x/a.png" alt="A"></p></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `ri:value="http://x/a.png"`) {
		t.Errorf("image inside malformed html not converted: %q", out)
	}
}
