package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/heatquote/internal/estimate"
	"github.com/Simplici0/heatquote/internal/export"
	"github.com/Simplici0/heatquote/internal/norms"
	"github.com/Simplici0/heatquote/internal/projectfile"
)

type estimateOptions struct {
	withCommissioning bool
	commissioning     *bool
	json              bool
	plan              bool
}

// errInvalid is returned by validate when the document has findings.
var errInvalid = errors.New("document has unknown keys or advisories")

// loadInput reads the document and converts it into engine input.
func loadInput(path string) (estimate.Input, error) {
	doc, err := projectfile.Load(path)
	if err != nil {
		return estimate.Input{}, err
	}
	in, err := doc.Input()
	if err != nil {
		return estimate.Input{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

func evaluate(log *zap.Logger, e *estimate.Engine, in estimate.Input) estimate.Summary {
	sum := e.Aggregate(in)
	for _, w := range sum.Warnings {
		log.Warn("unknown coefficient key",
			zap.String("entity", w.Entity),
			zap.String("field", w.Field),
			zap.String("key", w.Key),
		)
	}
	for _, a := range sum.Advisories {
		log.Warn("advisory", zap.String("code", a.Code), zap.String("message", a.Message))
	}
	return sum
}

func runEstimate(w io.Writer, log *zap.Logger, path string, opts estimateOptions) error {
	in, err := loadInput(path)
	if err != nil {
		return err
	}
	if opts.commissioning != nil {
		in.Commissioning = *opts.commissioning
	}

	e := estimate.New(nil)
	if opts.plan {
		plan := e.InstallPlan(in)
		if opts.json {
			return writeJSON(w, plan)
		}
		printPlan(w, plan)
		return nil
	}

	sum := evaluate(log, e, in)
	if opts.json {
		return writeJSON(w, sum)
	}
	_, err = io.WriteString(w, e.TextReport(in.Project, sum))
	return err
}

func runExport(w io.Writer, log *zap.Logger, path, format, output string) error {
	generate := export.GeneratePDF
	switch format {
	case "pdf":
	case "xlsx":
		generate = export.GenerateExcel
	default:
		return fmt.Errorf("unknown format %q (want pdf or xlsx)", format)
	}

	in, err := loadInput(path)
	if err != nil {
		return err
	}
	e := estimate.New(nil)
	sum := evaluate(log, e, in)

	notes := make([]string, 0, len(sum.Advisories))
	for _, a := range sum.Advisories {
		notes = append(notes, a.Message)
	}
	data, err := generate(export.Report{
		Table:       e.BuildTable(in.Project, sum),
		CreatedDate: time.Now().Format("02.01.2006"),
		Notes:       notes,
	})
	if err != nil {
		return fmt.Errorf("generate %s: %w", format, err)
	}

	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	log.Info("export written", zap.String("path", output), zap.Int("bytes", len(data)))
	fmt.Fprintf(w, "%s\n", output)
	return nil
}

func runValidate(w io.Writer, log *zap.Logger, path string) error {
	in, err := loadInput(path)
	if err != nil {
		return err
	}
	sum := evaluate(log, estimate.New(nil), in)

	if len(sum.Warnings) == 0 && len(sum.Advisories) == 0 {
		fmt.Fprintf(w, "OK: %d систем, %d узлов, %d приборов\n", len(in.Systems), in.HubCount(), len(in.Units))
		return nil
	}
	if len(sum.Warnings) > 0 {
		fmt.Fprintf(w, "Неизвестные значения (%d):\n", len(sum.Warnings))
		for _, warn := range sum.Warnings {
			fmt.Fprintf(w, "  %s: %s = %q\n", warn.Entity, warn.Field, warn.Key)
		}
	}
	if len(sum.Advisories) > 0 {
		fmt.Fprintf(w, "Замечания (%d):\n", len(sum.Advisories))
		for _, a := range sum.Advisories {
			fmt.Fprintf(w, "  [%s] %s\n", a.Code, a.Message)
		}
	}
	return errInvalid
}

func runNorms(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(norms.Standard()); err != nil {
		return fmt.Errorf("encode norms: %w", err)
	}
	return enc.Close()
}

func runInit(w io.Writer, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := projectfile.Marshal(projectfile.Example())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(w, "%s\n", path)
	return nil
}

func printPlan(w io.Writer, p estimate.Plan) {
	fmt.Fprintf(w, "Приборов: %d (тяжёлых: %d), общий коэффициент %s\n\n", p.Units, p.Heavy, estimate.FormatCoefficient(p.SiteCoef))
	for _, s := range p.Steps {
		fmt.Fprintf(w, "%s\n", s.Title)
		fmt.Fprintf(w, "  Норма: %s, время: %s\n", s.Norm, estimate.FormatHoursMinutes(s.Hours))
		if len(s.Tools) > 0 {
			fmt.Fprintf(w, "  Инструмент: %s\n", strings.Join(s.Tools, ", "))
		}
		if s.Note != "" {
			fmt.Fprintf(w, "  %s\n", s.Note)
		}
	}
	fmt.Fprintf(w, "\nВсего: %s\n", estimate.FormatHoursMinutes(p.Hours))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
