package yt

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/patrickprogramme/autosub/pkg/model"
)

// ParseYTDLP transforme le JSON brut en struct Meta
func ParseYTDLP(raw []byte) (*model.Meta, error) {
	var y ytdlpOutput
	if err := json.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("unmarshal ytdlp output: %w", err)
	}

	meta := &model.Meta{
		ID:       y.ID,
		Title:    y.Title,
		Uploader: y.Uploader,
		Duration: model.Seconds(int64(math.Round(y.Duration))),
	}

	// upload_date: try YYYYMMDD puis timestamp (fallback)
	if y.UploadDate != "" {
		if t, err := time.Parse("20060102", y.UploadDate); err == nil {
			meta.UploadDate = t
		}
	}
	if meta.UploadDate.IsZero() && y.Timestamp != 0 {
		meta.UploadDate = time.Unix(y.Timestamp, 0).UTC()
	}

	return meta, nil
}
