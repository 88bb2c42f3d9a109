package utils

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"decor/src/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// UPILink builds the upi://pay deep link encoded into payment QR
// codes. note is optional transaction narration.
func UPILink(upiID, payeeName string, amount int, note string) string {
	link := fmt.Sprintf(
		"upi://pay?pa=%s&pn=%s&am=%d&cu=INR",
		url.QueryEscape(upiID),
		url.QueryEscape(payeeName),
		amount,
	)
	if note != "" {
		link += "&tn=" + url.QueryEscape(note)
	}
	return link
}

// MediaFilename derives a stored filename from a display title and the
// original upload name. Falls back to a uuid when the title slugs to
// nothing.
func MediaFilename(title, original string) string {
	ext := strings.ToLower(path.Ext(original))
	name := slug.Make(title)
	if name == "" {
		name = uuid.NewString()
	}
	return name + ext
}

func MediaURL(cfg *config.Config, rel string) string {
	return strings.TrimSuffix(cfg.MediaBaseURL, "/") + "/" + strings.TrimPrefix(rel, "/")
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
