package watermark

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Properties are the raw text watermark settings. Out of range values are
// replaced by defaults when a Spec is built from them.
type Properties struct {
	FontFamily   string   `yaml:"fontFamily"`
	FontSize     float64  `yaml:"fontSize"`
	TextRotation float64  `yaml:"textRotation"`
	Color        string   `yaml:"hex255Color"`
	Alpha        *float64 `yaml:"alphaColor"`
	X            float64  `yaml:"xPosition"`
	Y            float64  `yaml:"yPosition"`
	InvertY      bool     `yaml:"invertY"`
}

// PropertiesFromMap reads the keys fontFamily, fontSize, textRotation,
// hex255Color, alphaColor, xPosition, yPosition and invertY. Missing or
// unparseable values are left at their zero value.
func PropertiesFromMap(m map[string]string) Properties {
	num := func(key string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(m[key]), 64)
		if err != nil {
			return 0
		}
		return v
	}

	p := Properties{
		FontFamily:   m["fontFamily"],
		FontSize:     num("fontSize"),
		TextRotation: num("textRotation"),
		Color:        m["hex255Color"],
		X:            num("xPosition"),
		Y:            num("yPosition"),
	}
	if raw, ok := m["alphaColor"]; ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			p.Alpha = &v
		}
	}
	p.InvertY, _ = strconv.ParseBool(strings.TrimSpace(m["invertY"]))
	return p
}

// LoadProperties decodes YAML using the same keys as PropertiesFromMap.
func LoadProperties(r io.Reader) (Properties, error) {
	var p Properties
	data, err := io.ReadAll(r)
	if err != nil {
		return p, errors.Wrap(err, "failed to read watermark properties")
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrap(err, "failed to parse watermark properties")
	}
	return p, nil
}
