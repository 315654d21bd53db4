package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Prober extracts metadata from a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (Metadata, error)
}

// FFProbe runs the ffprobe binary.
type FFProbe struct {
	Binary string
}

// LocateFFProbe finds ffprobe from configuration, the FFPROBE_PATH variable, then PATH.
func LocateFFProbe() (*FFProbe, error) {
	candidates := []string{
		viper.GetString(key.MediaFFProbePath),
		os.Getenv("FFPROBE_PATH"),
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return &FFProbe{Binary: path}, nil
		}
	}

	path, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, errors.New("ffprobe not found: set " + key.MediaFFProbePath + " or FFPROBE_PATH, or install ffmpeg")
	}
	return &FFProbe{Binary: path}, nil
}

// Probe reads the container and stream information of path.
func (f *FFProbe) Probe(ctx context.Context, path string) (Metadata, error) {
	if strings.TrimSpace(path) == "" {
		return Metadata{}, errors.New("a valid media path is required")
	}

	absolute, err := filepath.Abs(path)
	if err != nil {
		return Metadata{}, err
	}
	if err := filesystem.Readable(absolute); err != nil {
		return Metadata{}, err
	}

	cmd := exec.CommandContext(ctx, f.Binary,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		absolute,
	)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return Metadata{}, fmt.Errorf("failed to read metadata: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Metadata{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	return ParseProbe(out, absolute)
}

type probeOutput struct {
	Format struct {
		FormatName     string `json:"format_name"`
		FormatLongName string `json:"format_long_name"`
		Duration       string `json:"duration"`
		Size           string `json:"size"`
		BitRate        string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		Channels     int    `json:"channels"`
		SampleRate   string `json:"sample_rate"`
	} `json:"streams"`
}

// ParseProbe converts ffprobe's JSON report into Metadata.
func ParseProbe(data []byte, path string) (Metadata, error) {
	var out probeOutput
	if err := sonic.Unmarshal(data, &out); err != nil {
		return Metadata{}, fmt.Errorf("decode ffprobe output: %w", err)
	}

	metadata := Metadata{
		Path:     path,
		Format:   lo.CoalesceOrEmpty(out.Format.FormatLongName, out.Format.FormatName, "unknown"),
		Duration: parseFloat(out.Format.Duration),
		Size:     parseInt(out.Format.Size),
		BitRate:  parseInt(out.Format.BitRate),
	}

	for _, s := range out.Streams {
		switch s.CodecType {
		case "video":
			if metadata.Video != nil {
				continue
			}
			metadata.Video = &VideoStream{
				Codec:     lo.CoalesceOrEmpty(s.CodecName, "unknown"),
				Width:     s.Width,
				Height:    s.Height,
				FrameRate: s.AvgFrameRate,
			}
		case "audio":
			metadata.Audio = append(metadata.Audio, AudioStream{
				Codec:      lo.CoalesceOrEmpty(s.CodecName, "unknown"),
				Channels:   s.Channels,
				SampleRate: int(parseInt(s.SampleRate)),
			})
		}
	}

	return metadata, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
