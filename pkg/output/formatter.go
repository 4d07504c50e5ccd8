package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"revenue-forecast/pkg/catalog"
	"revenue-forecast/pkg/models"
)

// Fixed columns of every scenario table, before the stream and package columns.
var fixedHeaders = []string{
	"Month",
	"Total Customers",
	"New Customers",
	"One-Time Revenue (Cumulative)",
	"Base Hosting Revenue",
	"Upsell Revenue",
	"Total Monthly Revenue",
	"Total Revenue (Cumulative)",
}

// CatalogView is the printable form of a catalog.
type CatalogView struct {
	Name    string                `json:"name" yaml:"name"`
	Plans   []models.Plan         `json:"plans" yaml:"plans"`
	Addons  []models.AddonPackage `json:"addons" yaml:"addons"`
	Groups  []catalog.Group       `json:"exclusive_groups" yaml:"exclusive_groups"`
	Streams []models.Column       `json:"streams" yaml:"streams"`
}

// NewCatalogView snapshots a catalog for printing.
func NewCatalogView(c *catalog.Catalog) CatalogView {
	streams := lo.Map(c.Streams(), func(key string, _ int) models.Column {
		return models.Column{Key: key, Header: c.StreamLabel(key)}
	})
	return CatalogView{Name: c.Name(), Plans: c.Plans(), Addons: c.Addons(), Groups: c.Groups(), Streams: streams}
}


// Formatter renders simulation output.
type Formatter interface {
	Scenarios(w io.Writer, results []models.ScenarioResult) error
	Catalog(w io.Writer, view CatalogView) error
}

// NewFormatter returns a Formatter for the given format string.
// Supported formats: "table" (default), "csv", "json", "yaml".
func NewFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "csv":
		return &CSVFormatter{}
	case "json":
		return &JSONFormatter{}
	case "yaml":
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// Header returns the column titles of a scenario table.
func Header(res models.ScenarioResult) []string {
	h := append([]string(nil), fixedHeaders...)
	for _, c := range res.StreamColumns {
		h = append(h, c.Header)
	}
	for _, c := range res.PackageColumns {
		h = append(h, c.Header)
	}
	return h
}

// Record renders one row in Header order, currency with two decimals.
func Record(res models.ScenarioResult, row models.MonthlyAggregate) []string {
	rec := []string{
		strconv.Itoa(row.Month),
		strconv.Itoa(row.TotalCustomers),
		strconv.Itoa(row.NewCustomers),
		row.OneTimeRevenueCumulative.StringFixed(2),
		row.BaseHostingRevenue.StringFixed(2),
		row.UpsellRevenue.StringFixed(2),
		row.TotalMonthlyRevenue.StringFixed(2),
		row.TotalRevenueCumulative.StringFixed(2),
	}
	for _, c := range res.StreamColumns {
		rec = append(rec, row.StreamRevenue[c.Key].StringFixed(2))
	}
	for _, c := range res.PackageColumns {
		rec = append(rec, strconv.Itoa(row.PackageCounts[c.Key]))
	}
	return rec
}

// TableFormatter prints one aligned table per scenario.
type TableFormatter struct{}

func (f *TableFormatter) Scenarios(w io.Writer, results []models.ScenarioResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No scenario results.")
		return err
	}
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (seed %d) ==\n", res.Scenario.Label, res.Seed)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(Header(res), "\t"))
		for _, row := range res.Rows {
			fmt.Fprintln(tw, strings.Join(Record(res, row), "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) Catalog(w io.Writer, view CatalogView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Model:\t%s\n\n", view.Name)
	fmt.Fprintln(tw, "PLAN\tDISPLAY NAME\tTYPE\tPRICE\tPROBABILITY")
	for _, p := range view.Plans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\n", p.Name, p.DisplayName, p.Billing, p.Price, p.Probability)
	}
	if len(view.Addons) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "ADD-ON\tDISPLAY NAME\tTYPE\tPRICE\tPROBABILITY\tMAX QTY")
		for _, a := range view.Addons {
			maxQty := "-"
			if a.QuantityBased() {
				maxQty = strconv.Itoa(a.MaxQuantity)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%s\n", a.Name, a.DisplayName, a.Billing, a.Price, a.Probability, maxQty)
		}
	}
	if len(view.Streams) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "STREAM\tLABEL")
		for _, c := range view.Streams {
			fmt.Fprintf(tw, "%s\t%s\n", c.Key, c.Header)
		}
	}
	if len(view.Groups) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "EXCLUSIVE GROUP\tMEMBERS")
		for _, g := range view.Groups {
			fmt.Fprintf(tw, "%s\t%s\n", g.Name, strings.Join(g.Members, ", "))
		}
	}
	return tw.Flush()
}

// CSVFormatter writes every scenario into one CSV, with a leading Scenario column.
type CSVFormatter struct{}

func (f *CSVFormatter) Scenarios(w io.Writer, results []models.ScenarioResult) error {
	cw := csv.NewWriter(w)
	for i, res := range results {
		if i == 0 {
			if err := cw.Write(append([]string{"Scenario"}, Header(res)...)); err != nil {
				return err
			}
		}
		for _, row := range res.Rows {
			if err := cw.Write(append([]string{res.Scenario.Label}, Record(res, row)...)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func (f *CSVFormatter) Catalog(w io.Writer, view CatalogView) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"kind", "name", "display_name", "type", "price", "probability", "max_quantity"})
	for _, p := range view.Plans {
		_ = cw.Write([]string{"plan", p.Name, p.DisplayName, string(p.Billing), ftoa(p.Price), ftoa(p.Probability), "1"})
	}
	for _, a := range view.Addons {
		_ = cw.Write([]string{"addon", a.Name, a.DisplayName, string(a.Billing), ftoa(a.Price), ftoa(a.Probability), strconv.Itoa(a.MaxQuantity)})
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// JSONFormatter writes indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Scenarios(w io.Writer, results []models.ScenarioResult) error {
	return writeJSON(w, results)
}

func (f *JSONFormatter) Catalog(w io.Writer, view CatalogView) error {
	return writeJSON(w, view)
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// YAMLFormatter writes YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Scenarios(w io.Writer, results []models.ScenarioResult) error {
	return writeYAML(w, results)
}

func (f *YAMLFormatter) Catalog(w io.Writer, view CatalogView) error {
	return writeYAML(w, view)
}

func writeYAML(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}
