package main

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mrand "math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/astaxie/beego/logs"

	"github.com/syncopasoft/webserver/internal/worker"
)

var (
	adjectives = []string{"bright", "calm", "daring", "elegant", "fresh", "gentle", "lively", "mellow", "quick", "vivid"}
	nouns      = []string{"article", "banner", "chart", "diagram", "guide", "note", "poster", "report", "sketch", "track"}

	// sections maps a top-level directory to the extensions placed in it.
	sections = map[string][]string{
		"articles":  {"html", "htm", "txt"},
		"images":    {"png", "jpg", "jpeg", "gif"},
		"audio":     {"au", "wav", "mp3"},
		"video":     {"avi", "mpeg", "mpg"},
		"styles":    {"css"},
		"downloads": {"bin", "tar.gz", "md"},
	}
	// indexed sections get an index.html and are served as pages, not listings.
	indexed = map[string]bool{"articles": true}
)

// Options controls plan generation.
type Options struct {
	Root     string
	Count    int
	Sizes    []int64
	MaxBytes int64
	Private  float64
	Seed     int64
}

type fileTask struct {
	path    string
	size    int64
	header  []byte
	filler  []byte
	perm    os.FileMode
	modTime time.Time
}

// Plan is the full set of files to write.
type Plan struct {
	Root       string
	Dirs       []string
	Files      []fileTask
	TotalBytes int64
}

func buildPlan(opts Options) (*Plan, error) {
	if opts.Count <= 0 {
		return nil, errors.New("count must be greater than zero")
	}
	if len(opts.Sizes) == 0 {
		return nil, errors.New("at least one size must be provided")
	}
	if opts.MaxBytes < 0 {
		return nil, errors.New("max-bytes cannot be negative")
	}
	if opts.Private < 0 || opts.Private > 1 {
		return nil, errors.New("private must be between 0 and 1")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	rng := mrand.New(mrand.NewSource(seed))

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	plan := &Plan{Root: opts.Root}
	for _, name := range names {
		plan.Dirs = append(plan.Dirs, filepath.Join(opts.Root, name))
	}

	now := time.Now()
	used := map[string]bool{}
	for _, name := range names {
		if !indexed[name] {
			continue
		}
		plan.add(indexTask(filepath.Join(opts.Root, name), name, sections[name], now))
	}
	plan.add(indexTask(opts.Root, "home", names, now))

	for i := 0; i < opts.Count; i++ {
		remaining := int64(0)
		if opts.MaxBytes > 0 {
			remaining = opts.MaxBytes - plan.TotalBytes
			if remaining <= 0 {
				break
			}
		}
		size := chooseSize(rng, opts.Sizes, remaining)
		if size == 0 {
			break
		}
		section := names[rng.Intn(len(names))]
		exts := sections[section]
		ext := exts[rng.Intn(len(exts))]
		base := uniqueName(rng, used, section)
		header, filler := contentProfile(ext, base)
		perm := os.FileMode(0o644)
		if rng.Float64() < opts.Private {
			perm = 0o640
		}
		plan.add(fileTask{
			path:    filepath.Join(opts.Root, section, base+"."+ext),
			size:    size,
			header:  header,
			filler:  filler,
			perm:    perm,
			modTime: now.Add(-time.Duration(rng.Int63n(int64(365*24*time.Hour))) - time.Duration(i+1)*time.Second),
		})
	}
	return plan, nil
}

func (p *Plan) add(t fileTask) {
	p.Files = append(p.Files, t)
	p.TotalBytes += t.size
}

func indexTask(dir, title string, links []string, now time.Time) fileTask {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><head><title>%s</title></head><body>\n<h1>%s</h1>\n<ul>\n", formatTitle(title), formatTitle(title))
	for _, l := range links {
		fmt.Fprintf(&b, "<li><a href=\"%s/\">%s</a></li>\n", l, l)
	}
	b.WriteString("</ul>\n</body></html>\n")
	body := []byte(b.String())
	return fileTask{
		path:    filepath.Join(dir, "index.html"),
		size:    int64(len(body)),
		header:  body,
		perm:    0o644,
		modTime: now,
	}
}

// generate creates the directories and writes every file through a worker
// pool. The first failure is returned once all jobs have finished.
func generate(plan *Plan, workers int, log *logs.BeeLogger) error {
	if err := os.MkdirAll(plan.Root, 0o755); err != nil {
		return err
	}
	for _, dir := range append([]string{plan.Root}, plan.Dirs...) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := os.Chmod(dir, 0o755); err != nil {
			return err
		}
	}

	if workers > len(plan.Files) {
		workers = len(plan.Files)
	}
	if workers > worker.MaxPoolSize {
		workers = worker.MaxPoolSize
	}
	if workers < 1 {
		workers = 1
	}
	pool, err := worker.New(workers, log)
	if err != nil {
		return err
	}
	defer pool.Shutdown()

	var once sync.Once
	var genErr error
	for _, ft := range plan.Files {
		ft := ft
		err := pool.Submit(worker.JobFunc(func() {
			if err := createFile(ft); err != nil {
				once.Do(func() { genErr = fmt.Errorf("%s: %w", ft.path, err) })
				return
			}
			log.Debug("created %s (%s, %v)", ft.path, humanReadable(ft.size), ft.perm)
		}))
		if err != nil {
			return err
		}
	}
	pool.Shutdown()
	return genErr
}

func createFile(ft fileTask) error {
	filler := ft.filler
	if len(filler) == 0 {
		filler = []byte(" ")
	}
	f, err := os.OpenFile(ft.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	var written int64
	if err := writeSection(f, ft.header, ft.size, &written); err != nil {
		f.Close()
		return err
	}
	for written < ft.size {
		if err := writeSection(f, filler, ft.size, &written); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(ft.path, ft.perm); err != nil {
		return err
	}
	return os.Chtimes(ft.path, ft.modTime, ft.modTime)
}

func writeSection(f *os.File, data []byte, target int64, written *int64) error {
	remaining := target - *written
	if len(data) == 0 || remaining <= 0 {
		return nil
	}
	if int64(len(data)) > remaining {
		data = data[:remaining]
	}
	n, err := f.Write(data)
	*written += int64(n)
	return err
}

func contentProfile(ext, name string) (header, filler []byte) {
	title := formatTitle(name)
	switch ext {
	case "html", "htm":
		return []byte(fmt.Sprintf("<html><head><title>%s</title></head><body>\n<h1>%s</h1>\n", title, title)),
			[]byte("<p>Static content generated for serving tests.</p>\n")
	case "css":
		return []byte(fmt.Sprintf("/* %s */\n", title)), []byte("body { margin: 0; padding: 0; }\n")
	case "png":
		return []byte("\x89PNG\r\n\x1a\n"), []byte{0}
	case "jpg", "jpeg":
		return []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), []byte{0}
	case "gif":
		return []byte("GIF89a"), []byte{0}
	case "wav", "avi":
		return []byte("RIFF\x00\x00\x00\x00"), []byte{0}
	case "mp3":
		return []byte("ID3\x03\x00"), []byte{0}
	case "au":
		return []byte(".snd"), []byte{0}
	case "mpeg", "mpg":
		return []byte("\x00\x00\x01\xba"), []byte{0}
	case "md":
		return []byte(fmt.Sprintf("# %s\n\n", title)), []byte("- generated entry\n")
	default:
		return []byte(fmt.Sprintf("%s\n\n", title)), []byte("Generated by sitegen.\n")
	}
}

func uniqueName(rng *mrand.Rand, used map[string]bool, section string) string {
	for {
		name := fmt.Sprintf("%s-%s-%s", section, adjectives[rng.Intn(len(adjectives))], nouns[rng.Intn(len(nouns))])
		if rng.Intn(2) == 0 {
			name = fmt.Sprintf("%s-%d", name, rng.Intn(9000)+1000)
		}
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

func parseSizes(input string) ([]int64, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("empty sizes string")
	}
	parts := strings.Split(input, ",")
	sizes := make([]int64, 0, len(parts))
	for _, part := range parts {
		size, err := parseByteSize(part)
		if err != nil {
			return nil, err
		}
		if size <= 0 {
			return nil, errors.New("sizes must be positive")
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

func parseByteSize(input string) (int64, error) {
	s := strings.TrimSpace(strings.ToUpper(input))
	if s == "" {
		return 0, errors.New("empty size")
	}
	units := []struct {
		suffix     string
		multiplier int64
	}{
		{"GB", 1 << 30},
		{"G", 1 << 30},
		{"MB", 1 << 20},
		{"M", 1 << 20},
		{"KB", 1 << 10},
		{"K", 1 << 10},
		{"B", 1},
		{"", 1},
	}
	for _, unit := range units {
		if !strings.HasSuffix(s, unit.suffix) {
			continue
		}
		value := strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
		if value == "" {
			return 0, errors.New("missing value for size")
		}
		var n int64
		for _, r := range value {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid digit %q in size %q", r, input)
			}
			n = n*10 + int64(r-'0')
		}
		return n * unit.multiplier, nil
	}
	return 0, fmt.Errorf("unrecognised size %q", input)
}

// chooseSize picks one of sizes that fits in remaining. remaining <= 0
// means unlimited; 0 is returned when nothing fits.
func chooseSize(rng *mrand.Rand, sizes []int64, remaining int64) int64 {
	if remaining <= 0 {
		return sizes[rng.Intn(len(sizes))]
	}
	candidates := make([]int64, 0, len(sizes))
	for _, size := range sizes {
		if size <= remaining {
			candidates = append(candidates, size)
		}
	}
	if len(candidates) == 0 {
		return 0
	}
	return candidates[rng.Intn(len(candidates))]
}

func formatTitle(name string) string {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(segments) == 0 {
		return "Untitled"
	}
	for i, seg := range segments {
		segments[i] = strings.ToUpper(seg[:1]) + strings.ToLower(seg[1:])
	}
	return strings.Join(segments, " ")
}

func humanReadable(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

func randomSeed() int64 {
	var seed int64
	if err := binary.Read(rand.Reader, binary.BigEndian, &seed); err != nil || seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed
}
