package experiment

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	gojson "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sys/cpu"
	"gopkg.in/yaml.v3"
)

// Format selects a report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for unsupported report formats.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Platform describes the machine a report was produced on. Digests do not
// depend on it; it is recorded so that reports from different machines can
// be compared with confidence.
type Platform struct {
	GOOS      string `json:"goos" yaml:"goos" toml:"goos"`
	GOARCH    string `json:"goarch" yaml:"goarch" toml:"goarch"`
	BigEndian bool   `json:"big_endian" yaml:"big_endian" toml:"big_endian"`
	NumCPU    int    `json:"num_cpu" yaml:"num_cpu" toml:"num_cpu"`
	GoVersion string `json:"go_version" yaml:"go_version" toml:"go_version"`
}

// CurrentPlatform describes the running process.
func CurrentPlatform() Platform {
	return Platform{
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		BigEndian: cpu.IsBigEndian,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
}

// Result is the outcome of hashing one corpus with one hasher.
type Result struct {
	Hasher       string        `json:"hasher" yaml:"hasher" toml:"hasher"`
	Items        int           `json:"items" yaml:"items" toml:"items"`
	Collisions   uint64        `json:"collisions" yaml:"collisions" toml:"collisions"`
	Distribution Distribution  `json:"distribution" yaml:"distribution" toml:"distribution"`
	Duration     time.Duration `json:"duration_ns" yaml:"duration" toml:"duration_ns"`
}

// CollisionRate returns collisions per item.
func (r Result) CollisionRate() float64 {
	if r.Items == 0 {
		return 0
	}
	return float64(r.Collisions) / float64(r.Items)
}

// CorpusResult holds every hasher's result for one corpus, fewest
// collisions first.
type CorpusResult struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Items    int      `json:"items" yaml:"items" toml:"items"`
	Checksum uint32   `json:"checksum" yaml:"checksum" toml:"checksum"`
	Results  []Result `json:"results" yaml:"results" toml:"results"`
}

// Report is the outcome of Runner.Run.
type Report struct {
	Platform   Platform       `json:"platform" yaml:"platform" toml:"platform"`
	BucketBits uint           `json:"bucket_bits" yaml:"bucket_bits" toml:"bucket_bits"`
	Corpora    []CorpusResult `json:"corpora" yaml:"corpora" toml:"corpora"`
}

func (r *Report) sort() {
	for i := range r.Corpora {
		results := r.Corpora[i].Results
		sort.SliceStable(results, func(a, b int) bool {
			if results[a].Collisions != results[b].Collisions {
				return results[a].Collisions < results[b].Collisions
			}
			return results[a].Hasher < results[b].Hasher
		})
	}
}

// Render writes the report to w in the given format.
func (r *Report) Render(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		_, err := io.WriteString(w, r.Text())
		return err
	case FormatJSON:
		b, err := gojson.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

type column struct {
	title string
	align lipgloss.Position
}

var columns = []column{
	{"hasher", lipgloss.Left},
	{"collisions", lipgloss.Right},
	{"rate", lipgloss.Right},
	{"filled", lipgloss.Right},
	{"expected", lipgloss.Right},
	{"ratio", lipgloss.Right},
	{"time", lipgloss.Right},
}

// Text renders the report as a human-readable table per corpus.
func (r *Report) Text() string {
	var sb strings.Builder

	fmt.Fprintln(&sb, faintStyle.Render(fmt.Sprintf("%s/%s big_endian=%t cpus=%d %s buckets=2^%d",
		r.Platform.GOOS, r.Platform.GOARCH, r.Platform.BigEndian, r.Platform.NumCPU, r.Platform.GoVersion, r.BucketBits)))

	for _, c := range r.Corpora {
		fmt.Fprintln(&sb)
		fmt.Fprintln(&sb, titleStyle.Render(fmt.Sprintf("## %s ##", c.Name)),
			faintStyle.Render(fmt.Sprintf("items=%d crc32c=%08x", c.Items, c.Checksum)))

		rows := make([][]string, 0, len(c.Results))
		for _, res := range c.Results {
			rows = append(rows, []string{
				res.Hasher,
				strconv.FormatUint(res.Collisions, 10),
				strconv.FormatFloat(res.CollisionRate()*100, 'f', 4, 64) + "%",
				strconv.FormatUint(res.Distribution.Filled, 10),
				strconv.FormatFloat(res.Distribution.Expected, 'f', 1, 64),
				strconv.FormatFloat(res.Distribution.Ratio(), 'f', 4, 64),
				res.Duration.Round(time.Microsecond).String(),
			})
		}

		widths := make([]int, len(columns))
		for i, col := range columns {
			widths[i] = len(col.title)
			for _, row := range rows {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}

		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = headerStyle.Render(pad(col.title, widths[i], col.align))
		}
		fmt.Fprintln(&sb, strings.Join(cells, "  "))

		for k, row := range rows {
			for i, col := range columns {
				cells[i] = pad(row[i], widths[i], col.align)
			}
			line := strings.Join(cells, "  ")
			switch res := c.Results[k]; {
			case res.Collisions == 0:
				line = goodStyle.Render(line)
			case res.Items > 1 && res.Collisions == uint64(res.Items-1):
				line = badStyle.Render(line)
			}
			fmt.Fprintln(&sb, line)
		}
	}

	return sb.String()
}

func pad(s string, width int, align lipgloss.Position) string {
	return lipgloss.NewStyle().Width(width).Align(align).Render(s)
}
