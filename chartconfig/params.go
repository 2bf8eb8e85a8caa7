// Package chartconfig resolves the charting parameters for one input file
// from hardcoded defaults, settings files, option header lines and
// command-line overrides.
package chartconfig

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/go-playground/validator/v10"
)

// Params is the effective parameter set used to chart one table. The param
// tag is the case-insensitive name used in settings files and option header
// lines.
type Params struct {
	Alphabetize          bool     `param:"alphabetize"`
	Log                  bool     `param:"log"`
	Transpose            bool     `param:"transpose"`
	HideLabels           bool     `param:"hide_labels"`
	Greyscale            bool     `param:"greyscale"`
	PrintOOB             bool     `param:"print_oob"`
	PrintMinVal          bool     `param:"print_minval"`
	PrintMaxVal          bool     `param:"print_maxval"`
	SaveFileTypes        []string `param:"savefile_types" validate:"dive,oneof=png jpg jpeg gif tif tiff bmp svg"`
	SaveDir              string   `param:"savedir"`
	NormalizationRow     string   `param:"normalization_row"`
	DropNormalizationRow bool     `param:"drop_normalization_row"`
	MaxColumnsPerPlot    int      `param:"max_columns_per_plot" validate:"min=1"`
	IncludeChartNumber   bool     `param:"include_chartnumber"`
	Title                string   `param:"title"`
	XLabel               string   `param:"xlabel"`
	YLabel               string   `param:"ylabel"`
	LegendTitle          string   `param:"legend_title"`
	Width                int      `param:"width" validate:"min=200,max=10000"`
	Height               int      `param:"height" validate:"min=200,max=10000"`
	Colormap             []string `param:"colormap" validate:"min=2,dive,hexcolor"`
	Datestamp            bool     `param:"datestamp"`
	ContactSheet         bool     `param:"contact_sheet"`
	SaveParams           bool     `param:"save_params"`
	SaveSummary          bool     `param:"save_summary"`
}

// Viridis, sampled at five points.
var defaultColormap = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

// Defaults returns the hardcoded parameter defaults.
func Defaults() Params {
	return Params{
		PrintOOB:          true,
		PrintMinVal:       true,
		PrintMaxVal:       true,
		SaveFileTypes:     []string{"png"},
		MaxColumnsPerPlot: 9999,
		Width:             1200,
		Height:            700,
		Colormap:          append([]string(nil), defaultColormap...),
		Datestamp:         true,
		SaveParams:        true,
	}
}

type paramField struct {
	Key   string
	Index int
	Kind  reflect.Kind
}

var (
	paramFields    []paramField
	paramFieldMap  map[string]paramField
	fieldKeyByName map[string]string
	validate       = validator.New()
)

func init() {
	typ := reflect.TypeOf(Params{})
	paramFieldMap = make(map[string]paramField, typ.NumField())
	fieldKeyByName = make(map[string]string, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		pf := paramField{Key: f.Tag.Get("param"), Index: i, Kind: f.Type.Kind()}
		paramFields = append(paramFields, pf)
		paramFieldMap[pf.Key] = pf
		fieldKeyByName[f.Name] = pf.Key
	}
}

// Keys returns every recognized parameter name in declaration order.
func Keys() []string {
	out := make([]string, 0, len(paramFields))
	for _, f := range paramFields {
		out = append(out, f.Key)
	}
	return out
}

// IsKnown reports whether key (case-insensitive) names a parameter.
func IsKnown(key string) bool {
	_, exists := paramFieldMap[normalizeKey(key)]
	return exists
}

// isStringParam reports whether key names a parameter holding free text.
func isStringParam(key string) bool {
	f, exists := paramFieldMap[normalizeKey(key)]
	return exists && f.Kind == reflect.String
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// ToSet returns the parameters as a raw Set containing every recognized key.
func (p Params) ToSet() Set {
	out := make(Set, len(paramFields))
	v := reflect.ValueOf(p)
	for _, f := range paramFields {
		fv := v.Field(f.Index)
		switch f.Kind {
		case reflect.Slice:
			out[f.Key] = append([]string(nil), fv.Interface().([]string)...)
		default:
			out[f.Key] = fv.Interface()
		}
	}
	return out
}

// FromSet decodes a Set into Params. Keys missing from s keep their default
// values; unknown keys are an error. The result is validated.
func FromSet(s Set) (Params, error) {
	p := Defaults()
	v := reflect.ValueOf(&p).Elem()

	var errs []error
	for key, raw := range s {
		f, exists := paramFieldMap[normalizeKey(key)]
		if !exists {
			errs = append(errs, fmt.Errorf("unknown parameter %q", key))
			continue
		}

		val, err := coerce(f, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		v.Field(f.Index).Set(val)
	}
	if len(errs) > 0 {
		return p, pfx.Err(errors.Join(errs...))
	}

	p.normalize()

	if err := validate.Struct(p); err != nil {
		return p, pfx.Err(describeValidation(err))
	}

	return p, nil
}

// Set applies a single parameter. Unlike file-based merges, an unknown key is
// an error and nothing is changed.
func (p *Params) Set(key string, value interface{}) error {
	key = normalizeKey(key)
	if !IsKnown(key) {
		return pfx.Err(fmt.Errorf("invalid parameter specified: %s", key))
	}

	s := p.ToSet()
	s[key] = StrToBool(value)

	updated, err := FromSet(s)
	if err != nil {
		return err
	}

	*p = updated
	return nil
}

// Get returns the value of one parameter, or false if key is not recognized.
func (p Params) Get(key string) (interface{}, bool) {
	v, exists := p.ToSet()[normalizeKey(key)]
	return v, exists
}

func (p *Params) normalize() {
	types := make([]string, 0, len(p.SaveFileTypes))
	for _, t := range p.SaveFileTypes {
		t = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(t)), ".")
		if t != "" {
			types = append(types, t)
		}
	}
	p.SaveFileTypes = types

	colors := make([]string, 0, len(p.Colormap))
	for _, c := range p.Colormap {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if !strings.HasPrefix(c, "#") {
			c = "#" + c
		}
		colors = append(colors, c)
	}
	p.Colormap = colors
}

func coerce(f paramField, raw interface{}) (reflect.Value, error) {
	switch f.Kind {
	case reflect.Bool:
		switch x := StrToBool(raw).(type) {
		case bool:
			return reflect.ValueOf(x), nil
		}
		return reflect.Value{}, fmt.Errorf("%s expects a boolean, got %v", f.Key, raw)

	case reflect.String:
		switch x := raw.(type) {
		case string:
			return reflect.ValueOf(strings.TrimLeft(x, " \t")), nil
		case []string:
			return reflect.ValueOf(strings.Join(x, ",")), nil
		case bool:
			// Words like "yes" were already turned into booleans upstream.
			return reflect.ValueOf(strconv.FormatBool(x)), nil
		}
		if n, ok := asFloat(raw); ok {
			return reflect.ValueOf(strconv.FormatFloat(n, 'g', -1, 64)), nil
		}

	case reflect.Int:
		if x, ok := raw.(string); ok {
			n, err := strconv.Atoi(strings.TrimSpace(x))
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%s expects an integer, got %q", f.Key, x)
			}
			return reflect.ValueOf(n), nil
		}
		if n, ok := asFloat(raw); ok {
			if n != math.Trunc(n) {
				return reflect.Value{}, fmt.Errorf("%s expects an integer, got %v", f.Key, n)
			}
			return reflect.ValueOf(int(n)), nil
		}

	case reflect.Slice:
		switch x := raw.(type) {
		case []string:
			out := make([]string, 0, len(x))
			for _, v := range x {
				if v = strings.TrimSpace(v); v != "" {
					out = append(out, v)
				}
			}
			return reflect.ValueOf(out), nil
		case string:
			if x = strings.TrimSpace(x); x == "" {
				return reflect.ValueOf([]string{}), nil
			}
			return reflect.ValueOf([]string{x}), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("%s: unsupported value %v (%T)", f.Key, raw, raw)
}

func asFloat(raw interface{}) (float64, bool) {
	switch x := raw.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		// StructField is e.g. "Colormap[1]" for dive failures.
		name := fe.StructField()
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		out = append(out, fmt.Errorf("%s: value %v fails constraint %s", fieldKeyByName[name], fe.Value(), fe.Tag()))
	}

	return errors.Join(out...)
}
