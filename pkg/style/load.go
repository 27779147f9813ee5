package style

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/sidechan/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Theme file formats accepted by LoadTheme.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// themeFile is the on-disk shape of a theme. Colors are either a single
// string or a {light, dark} table, so they decode into any first.
//
//	name: ocean
//	glyphs: ascii
//	colors:
//	  error: "#FF5555"
//	styles:
//	  header: { foreground: { light: "#000000", dark: "#FFFFFF" }, bold: true }
type themeFile struct {
	Name   string               `yaml:"name" toml:"name"`
	Glyphs string               `yaml:"glyphs" toml:"glyphs"`
	Colors map[string]any       `yaml:"colors" toml:"colors"`
	Styles map[string]styleFile `yaml:"styles" toml:"styles"`
}

type styleFile struct {
	Foreground any  `yaml:"foreground" toml:"foreground"`
	Background any  `yaml:"background" toml:"background"`
	Bold       bool `yaml:"bold" toml:"bold"`
	Italic     bool `yaml:"italic" toml:"italic"`
	Faint      bool `yaml:"faint" toml:"faint"`
	Underline  bool `yaml:"underline" toml:"underline"`
}

// LoadTheme reads a YAML or TOML theme file. The format follows the file
// extension. Roles the file does not mention keep their default style.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrThemeLoad, "cannot read theme %s", path).
			WithDetail("path", path)
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".toml":
		format = FormatTOML
	default:
		return nil, errors.Newf(errors.ErrThemeInvalid, "unsupported theme format: %s", filepath.Ext(path)).
			WithDetail("path", path)
	}

	t, err := ParseTheme(data, format)
	if err != nil {
		return nil, err
	}
	if t.Name() == DefaultThemeName {
		t = t.WithName(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	return t, nil
}

// ParseTheme decodes theme data in the given format.
func ParseTheme(data []byte, format string) (*Theme, error) {
	var f themeFile
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, errors.ErrThemeInvalid, "invalid yaml theme")
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, errors.ErrThemeInvalid, "invalid toml theme")
		}
	default:
		return nil, errors.Newf(errors.ErrThemeInvalid, "unsupported theme format: %s", format)
	}
	return f.build()
}

func (f themeFile) build() (*Theme, error) {
	base := Default()

	glyphs := base.Glyphs()
	switch strings.ToLower(f.Glyphs) {
	case "", "unicode":
	case "ascii":
		glyphs = ASCIIGlyphs
	default:
		return nil, errors.Newf(errors.ErrThemeInvalid, "unknown glyph set: %s", f.Glyphs)
	}

	name := f.Name
	if name == "" {
		name = DefaultThemeName
	}

	styles := make(map[Role]StyleDef, len(Roles))
	for _, role := range Roles {
		styles[role] = base.Style(role)
	}

	// Colors first, then full style entries, so a style wins over a bare
	// color for the same role. Sorted for deterministic error messages.
	for _, key := range sortedKeys(f.Colors) {
		role, err := parseRoleKey(key)
		if err != nil {
			return nil, err
		}
		c, err := parseColor(f.Colors[key])
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrThemeInvalid, "colors.%s", key)
		}
		def := styles[role]
		def.Foreground = c
		styles[role] = def
	}

	for _, key := range sortedKeys(f.Styles) {
		role, err := parseRoleKey(key)
		if err != nil {
			return nil, err
		}
		sf := f.Styles[key]
		fg, err := parseColor(sf.Foreground)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrThemeInvalid, "styles.%s.foreground", key)
		}
		bg, err := parseColor(sf.Background)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrThemeInvalid, "styles.%s.background", key)
		}
		styles[role] = StyleDef{
			Foreground: fg,
			Background: bg,
			Bold:       sf.Bold,
			Italic:     sf.Italic,
			Faint:      sf.Faint,
			Underline:  sf.Underline,
		}
	}

	return NewTheme(name, styles, glyphs), nil
}

func parseRoleKey(key string) (Role, error) {
	role, ok := ParseRole(key)
	if !ok {
		return RoleNone, errors.Newf(errors.ErrThemeInvalid, "unknown role: %s", key).
			WithDetail("role", key)
	}
	return role, nil
}

// parseColor accepts "#RRGGBB", an ANSI number, or a {light, dark} table.
func parseColor(v any) (ColorDef, error) {
	switch c := v.(type) {
	case nil:
		return ColorDef{}, nil
	case string:
		if err := checkColor(c); err != nil {
			return ColorDef{}, err
		}
		return ColorDef{Light: c, Dark: c}, nil
	case int, int64, uint64:
		s := fmt.Sprint(c)
		return ColorDef{Light: s, Dark: s}, nil
	case map[string]any:
		var def ColorDef
		for k, raw := range c {
			s, ok := raw.(string)
			if !ok {
				s = fmt.Sprint(raw)
			}
			if err := checkColor(s); err != nil {
				return ColorDef{}, err
			}
			switch strings.ToLower(k) {
			case "light":
				def.Light = s
			case "dark":
				def.Dark = s
			default:
				return ColorDef{}, fmt.Errorf("unknown color variant %q", k)
			}
		}
		return def, nil
	default:
		return ColorDef{}, fmt.Errorf("unsupported color value %v", v)
	}
}

func checkColor(s string) error {
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return fmt.Errorf("malformed hex color %q", s)
		}
		for _, r := range s[1:] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return fmt.Errorf("malformed hex color %q", s)
			}
		}
		return nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("malformed color %q", s)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
