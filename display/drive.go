package display

import (
	"errors"
	"net/url"
	"strings"

	"github.com/dcode-github/realty_portal/forms"
)

var ErrInvalidDriveURL = errors.New("invalid Google Drive URL format")

// ConvertDriveURL turns a Drive share link (".../file/d/<id>/view") into a
// direct image URL.
func ConvertDriveURL(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidDriveURL
	}
	parts := strings.Split(u.Path, "/")
	for i, part := range parts {
		if part == "d" && i+1 < len(parts) && parts[i+1] != "" {
			return "https://drive.google.com/uc?export=view&id=" + url.QueryEscape(parts[i+1]), nil
		}
	}
	return "", ErrInvalidDriveURL
}

// AppendImage adds link to a comma-separated image list and returns the
// normalized list text.
func AppendImage(list, link string) string {
	return forms.JoinList(append(forms.SplitList(list), forms.SplitList(link)...))
}
