package site

import (
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/soar/internal/errors"
	"github.com/vango-dev/soar/pkg/middleware"
)

// ManifestFile is written at the root of every build. It maps page urls
// and static files to their path inside the output directory.
const ManifestFile = "manifest.json"

// Result describes a finished build.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Output is the output directory.
	Output string

	// Pages are the urls of the rendered pages, sorted.
	Pages []string

	// Assets are the static files copied, relative to the output directory.
	Assets []string

	// Bytes is the total size of the files written.
	Bytes int64

	// Manifest maps page urls and static files to output paths.
	Manifest map[string]string
}

// BuildOptions configures Build.
type BuildOptions struct {
	// Clean removes the output directory first.
	Clean bool

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Build renders every page to <outdir>/<url>/index.html, copies the static
// directory and writes the manifest. Pages are rendered in url order; the
// first failure stops the build.
func (s *Site) Build(ctx context.Context, outdir string, opts BuildOptions) (*Result, error) {
	start := time.Now()
	result := &Result{
		Output:   outdir,
		Manifest: make(map[string]string),
	}

	if opts.Clean {
		progress(opts, "Cleaning output directory...")
		if err := os.RemoveAll(outdir); err != nil {
			return nil, errors.New("E201").Wrap(err)
		}
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return nil, errors.New("E201").Wrap(err)
	}

	for _, url := range s.Pages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		progress(opts, "Rendering "+url)

		page, err := s.RenderPage(ctx, url)
		if err != nil {
			return nil, err
		}
		rel := PageFile(url)
		if err := writeFile(filepath.Join(outdir, filepath.FromSlash(rel)), page); err != nil {
			return nil, err
		}
		middleware.RecordPageBuilt()

		result.Pages = append(result.Pages, url)
		result.Manifest[url] = rel
		result.Bytes += int64(len(page))
	}

	if s.static != "" {
		progress(opts, "Copying static files...")
		if err := s.copyStatic(outdir, result); err != nil {
			return nil, err
		}
	}

	progress(opts, "Writing manifest...")
	if err := writeManifest(outdir, result.Manifest); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	s.logger.Info("site built",
		"output", outdir,
		"pages", len(result.Pages),
		"assets", len(result.Assets),
		"bytes", result.Bytes,
		"duration", result.Duration,
	)
	return result, nil
}

// copyStatic copies the static directory into outdir. Stylesheets go
// through the CSS transform; files shadowed by a rendered page are skipped.
func (s *Site) copyStatic(outdir string, result *Result) error {
	if _, err := os.Stat(s.static); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(s.static, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.New("E201").Wrap(err)
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.static, path)
		if err != nil {
			return errors.New("E201").Wrap(err)
		}
		rel = filepath.ToSlash(rel)
		if url, ok := PageURL(rel); ok {
			if _, shadowed := s.Lookup(url); shadowed {
				s.logger.Warn("static file shadowed by page", "file", rel, "url", url)
				return nil
			}
		}

		dst := filepath.Join(outdir, filepath.FromSlash(rel))
		var n int64
		if isStylesheet(rel) {
			n, err = s.writeStylesheet(path, rel, dst)
		} else {
			n, err = copyFile(path, dst)
		}
		if err != nil {
			return err
		}
		result.Assets = append(result.Assets, rel)
		result.Manifest[rel] = rel
		result.Bytes += n
		return nil
	})
}

func (s *Site) writeStylesheet(src, rel, dst string) (int64, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return 0, errors.New("E201").Wrap(err)
	}
	out, err := s.transformStylesheet(rel, data)
	if err != nil {
		return 0, err
	}
	if err := writeFile(dst, out); err != nil {
		return 0, err
	}
	return int64(len(out)), nil
}

// isStylesheet reports whether a static file is run through the CSS
// transform. Names starting with "_" are partials and are copied as is.
func isStylesheet(rel string) bool {
	name := path.Base(rel)
	return strings.EqualFold(path.Ext(name), ".css") && !strings.HasPrefix(name, "_")
}

// transformStylesheet minifies and lowers a static stylesheet with the
// renderer's transformer.
func (s *Site) transformStylesheet(rel string, data []byte) ([]byte, error) {
	t := s.renderer.Config().Transformer
	if t == nil {
		return data, nil
	}
	out, err := t.Transform(string(data))
	if err != nil {
		return nil, errors.New("E012").WithDetail("cannot transform " + rel).Wrap(err)
	}
	return []byte(out), nil
}

func writeManifest(outdir string, manifest map[string]string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.New("E201").Wrap(err)
	}
	return writeFile(filepath.Join(outdir, ManifestFile), data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("E201").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E201").Wrap(err)
	}
	return nil
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.New("E201").Wrap(err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, errors.New("E201").Wrap(err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return 0, errors.New("E201").Wrap(err)
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, errors.New("E201").Wrap(err)
	}
	return n, nil
}

func progress(opts BuildOptions, step string) {
	if opts.OnProgress != nil {
		opts.OnProgress(step)
	}
}
