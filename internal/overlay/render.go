// Package overlay renders reports into the text shown by the on-screen label.
package overlay

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"perfoverlay/internal/model"
)

// Options selects the lines of the built-in layout. A non-empty Template
// replaces the layout entirely.
type Options struct {
	Performance bool
	Memory      bool
	Thermal     bool
	Application bool
	Device      bool
	System      bool
	Template    string
}

func DefaultOptions() Options {
	return Options{Performance: true, Memory: true, Thermal: true}
}

// TemplateData is the value templates are executed against.
type TemplateData struct {
	Report model.PerformanceReportV2
	Info   Info
}

type Formatter struct {
	opts Options
	info Info
	tmpl *template.Template
	log  *logrus.Entry
}

func NewFormatter(opts Options, info Info) (*Formatter, error) {
	f := &Formatter{
		opts: opts,
		info: info,
		log:  logrus.WithField("component", "overlay"),
	}
	if opts.Template == "" {
		return f, nil
	}

	funcs := sprig.TxtFuncMap()
	funcs["bytes"] = formatBytes
	funcs["percent"] = formatPercent
	tmpl, err := template.New("label").Funcs(funcs).Parse(opts.Template)
	if err != nil {
		return nil, fmt.Errorf("parse label template: %w", err)
	}
	f.tmpl = tmpl
	return f, nil
}

// Format renders r. A template that fails at execution falls back to the
// built-in layout.
func (f *Formatter) Format(r model.PerformanceReportV2) string {
	if f.tmpl != nil {
		var b bytes.Buffer
		err := f.tmpl.Execute(&b, TemplateData{Report: r, Info: f.info})
		if err == nil {
			return strings.TrimRight(b.String(), "\n")
		}
		f.log.WithError(err).Debug("label template failed, using default layout")
	}
	return f.layout(r)
}

func (f *Formatter) layout(r model.PerformanceReportV2) string {
	lines := make([]string, 0, 6)

	if f.opts.Performance {
		lines = append(lines, fmt.Sprintf("CPU: %s  FPS: %d", formatPercent(r.CPUReport.Usage), r.FPS))
	}
	if f.opts.Memory {
		lines = append(lines, fmt.Sprintf("Memory: %s of %s",
			formatBytes(r.MemoryReport.Usage.Used),
			formatBytes(r.MemoryReport.Usage.Total),
		))
	}
	if f.opts.Thermal {
		lines = append(lines, "Thermal: "+r.ThermalReport.State.String())
	}
	if f.opts.Application && f.info.AppName != "" {
		app := sanitize(f.info.AppName)
		if f.info.AppVersion != "" {
			app += " v" + sanitize(f.info.AppVersion)
		}
		lines = append(lines, "App: "+app)
	}
	if f.opts.Device && f.info.Device != "" {
		lines = append(lines, "Device: "+sanitize(f.info.Device))
	}
	if f.opts.System && f.info.System != "" {
		lines = append(lines, "System: "+sanitize(f.info.System))
	}

	return strings.Join(lines, "\n")
}

// Summary is a single-line digest of the running statistics.
func Summary(r model.PerformanceReportV2) string {
	return fmt.Sprintf(
		"cpu avg %s max %s min %s | mem avg %s max %s min %s | fps %d | thermal %s",
		formatPercent(r.CPUReport.Average),
		formatPercent(r.CPUReport.Max),
		formatPercent(r.CPUReport.Min),
		formatBytes(uint64(r.MemoryReport.Average)),
		formatBytes(uint64(r.MemoryReport.Max)),
		formatBytes(uint64(r.MemoryReport.Min)),
		r.FPS,
		r.ThermalReport.State,
	)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func formatBytes(v uint64) string {
	return humanize.IBytes(v)
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
