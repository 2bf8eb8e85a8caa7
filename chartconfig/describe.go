package chartconfig

import (
	"fmt"
	"strings"
)

// ParamInfo documents one parameter.
type ParamInfo struct {
	Key         string
	Type        string
	Default     string
	Description string
}

var descriptions = map[string]string{
	"alphabetize":            "Plot the measured values in alphabetical order",
	"log":                    "Plot on a logarithmic scale",
	"transpose":              "Group by sample type rather than measured items",
	"hide_labels":            "Do not label the individual bars / heatmap patches. Overrides print_ parameters",
	"greyscale":              "Remove color from plots",
	"print_oob":              "Add N.D./SAT. labels to values below/above the detection threshold",
	"print_minval":           "Print the lower limit of detection on the bars/patches below it",
	"print_maxval":           "Print the upper limit of detection on the bars/patches above it",
	"savefile_types":         "Filetype(s) to save: png, jpg, jpeg, gif, tif, tiff, bmp, svg",
	"savedir":                "Directory for the saved files, relative to the input directory. Empty means Charts",
	"normalization_row":      "Row to use to normalize a plot",
	"drop_normalization_row": "Don't include the normalization row in a normalized plot",
	"max_columns_per_plot":   "Partition a large file into plots of at most this many measured items",
	"include_chartnumber":    "Print 'X of Y' in the titles of split plots",
	"title":                  "Chart title",
	"xlabel":                 "X-axis label",
	"ylabel":                 "Y-axis label",
	"legend_title":           "Label for the legend. Also displayed next to the color bar in a heatmap",
	"width":                  "Image width in pixels",
	"height":                 "Image height in pixels",
	"colormap":               "Heatmap color stops as hex RGB, lowest first",
	"datestamp":              "Prefix output file names with the date (YYYYMMDD)",
	"contact_sheet":          "Also save one image combining every part of a split plot",
	"save_params":            "Save the parameters used for each file in a -params.txt file",
	"save_summary":           "Save a per-item censoring summary in a -summary.csv file",
}

// Describe lists every parameter with its type, default and description.
func Describe() []ParamInfo {
	defaults := Defaults().ToSet()
	out := make([]ParamInfo, 0, len(paramFields))
	for _, f := range paramFields {
		out = append(out, ParamInfo{
			Key:         f.Key,
			Type:        typeName(defaults[f.Key]),
			Default:     formatValue(defaults[f.Key]),
			Description: descriptions[f.Key],
		})
	}
	return out
}

// Dump renders the non-empty parameters as comma-separated key=value pairs.
func (p Params) Dump() string {
	s := p.ToSet()
	parts := make([]string, 0, len(s))
	for _, f := range paramFields {
		v := formatValue(s[f.Key])
		if v == "" || v == "[]" {
			continue
		}
		parts = append(parts, f.Key+"="+v)
	}
	return strings.Join(parts, ",")
}

func typeName(v interface{}) string {
	switch v.(type) {
	case bool:
		return "bool"
	case int:
		return "int"
	case []string:
		return "list"
	}
	return "string"
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case []string:
		return "[" + strings.Join(x, " ") + "]"
	case string:
		return x
	}
	return fmt.Sprint(v)
}
