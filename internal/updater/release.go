package updater

import (
	"context"
	"fmt"

	"github.com/patrickprogramme/autosub/internal/fetch"
)

const latestReleaseURL = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"

type rawRelease struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	PublishedAt string `json:"published_at"`
	Body        string `json:"body"`
	HTMLURL     string `json:"html_url"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		ContentType        string `json:"content_type"`
	} `json:"assets"`
}

// GetLatestYtDlpRelease interroge l'API GitHub pour la dernière release yt-dlp.
func GetLatestYtDlpRelease(ctx context.Context) (*YtDlpReleaseInfo, error) {
	var raw rawRelease
	if err := fetch.FetchJSONInto(ctx, latestReleaseURL, 0, 0, &raw); err != nil {
		return nil, fmt.Errorf("release GitHub yt-dlp: %w", err)
	}

	info := &YtDlpReleaseInfo{
		TagName: raw.TagName,
		Name:    raw.Name,
		Body:    raw.Body,
		HTMLURL: raw.HTMLURL,
	}
	if raw.PublishedAt != "" {
		if t, err := parsePublishedAt(raw.PublishedAt); err == nil {
			info.PublishedAt = t
		}
	}

	for _, a := range raw.Assets {
		switch a.Name {
		case "yt-dlp.exe":
			info.WindowsRelease = YtDlpAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		case "yt-dlp":
			info.LinuxRelease = YtDlpAsset{a.Name, a.BrowserDownloadURL, a.ContentType}
		}
	}

	if info.WindowsRelease.BrowserDownloadURL == "" {
		return nil, fmt.Errorf("asset Windows introuvable")
	}
	if info.LinuxRelease.BrowserDownloadURL == "" {
		return nil, fmt.Errorf("asset Linux introuvable")
	}

	return info, nil
}
