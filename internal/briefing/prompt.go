package briefing

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/yegors/airscen/internal/scenario"
)

const promptText = `You are an air traffic flow management assistant. Write a concise
operational briefing (3-6 sentences, plain prose, no markdown) for the
following traffic scenario.

Scenario: {{.Name}}
{{- if .Datetime}}
Valid: {{.Datetime}}
{{- end}}
{{- if .Author}}
Filed by: {{.Author}}
{{- end}}

Flights ({{len .Flights}}):
{{- range .Flights}}
- {{.Callsign}} {{.Aircraft}} (wake {{.Wake}}, cost index {{.CostIndex}}), {{.Plans}} filed plan(s)
{{- end}}

Sectors ({{len .Sectors}}):
{{- range .Sectors}}
- {{.Name}}: peak capacity {{.PeakCapacity}}/15min{{if .HasBand}}, FL{{.Lower}}-FL{{.Upper}}{{end}}
{{- end}}

Summarize the traffic picture, call out sectors with zero declared capacity,
and note flights with multiple route alternates.`

var promptTmpl = template.Must(template.New("briefing").Parse(promptText))

type promptFlight struct {
	Callsign  string
	Aircraft  string
	Wake      string
	CostIndex float64
	Plans     int
}

type promptSector struct {
	Name         string
	PeakCapacity int
	HasBand      bool
	Lower        float64
	Upper        float64
}

type promptData struct {
	Name     string
	Datetime string
	Author   string
	Flights  []promptFlight
	Sectors  []promptSector
}

// renderPrompt turns the scenario into the model prompt. The result doubles
// as the cache key: a changed scenario renders a different prompt.
func renderPrompt(sc *scenario.Scenario) (string, error) {
	data := promptData{
		Name:     sc.Name(),
		Datetime: sc.Datetime(),
		Author:   sc.Author(),
	}

	for _, f := range sc.Flights() {
		data.Flights = append(data.Flights, promptFlight{
			Callsign:  f.Callsign(),
			Aircraft:  f.Aircraft(),
			Wake:      f.WakeCategory().String(),
			CostIndex: f.CostIndex(),
			Plans:     len(f.FiledPlans()),
		})
	}

	for _, sec := range sc.Sectors() {
		ps := promptSector{Name: sec.Name()}
		for _, v := range sec.Capacity() {
			if v > ps.PeakCapacity {
				ps.PeakCapacity = v
			}
		}
		lower, hasLower := sec.LowerAltitude()
		upper, hasUpper := sec.UpperAltitude()
		if hasLower && hasUpper {
			ps.HasBand = true
			ps.Lower = lower
			ps.Upper = upper
		}
		data.Sectors = append(data.Sectors, ps)
	}

	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render briefing prompt: %w", err)
	}
	return buf.String(), nil
}
