package style

// Color definitions using adaptive pairs for automatic light/dark switching
var (
	PrimaryColor   = ColorDef{Light: "#0057B8", Dark: "#3D9EFF"}
	SecondaryColor = ColorDef{Light: "#6D28D9", Dark: "#A78BFA"}
	AccentColor    = ColorDef{Light: "#0E7490", Dark: "#4DD0E1"}
	SuccessColor   = ColorDef{Light: "#28A745", Dark: "#4CDD76"}
	WarningColor   = ColorDef{Light: "#B7791F", Dark: "#FFD54F"}
	ErrorColor     = ColorDef{Light: "#DC3545", Dark: "#FF6B7D"}
	InfoColor      = ColorDef{Light: "#17A2B8", Dark: "#4DD0E1"}
	TextColor      = ColorDef{Light: "#495057", Dark: "#E9ECEF"}
	MutedColor     = ColorDef{Light: "#6C757D", Dark: "#ADB5BD"}
	BorderColor    = ColorDef{Light: "#ADB5BD", Dark: "#5C5F77"}
	HeadingColor   = ColorDef{Light: "#212529", Dark: "#F8F9FA"}
)

// UnicodeGlyphs draws rounded boxes and uses symbol icons.
var UnicodeGlyphs = Glyphs{
	Horizontal:  "─",
	Vertical:    "│",
	TopLeft:     "╭",
	TopRight:    "╮",
	BottomLeft:  "╰",
	BottomRight: "╯",
	Delimiter:   " │ ",
	Ellipsis:    "…",
	BarFull:     "█",
	BarEmpty:    "░",
	Branch:      "├─ ",
	LastBranch:  "└─ ",
	Pipe:        "│  ",
	Check:       "✓",
	Cross:       "✗",
	Warn:        "⚠",
	Info:        "ℹ",
	Pending:     "◐",
	Empty:       "○",
	Cancel:      "⊘",
	Spinner:     []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
}

// ASCIIGlyphs is for terminals and log collectors without Unicode.
var ASCIIGlyphs = Glyphs{
	Horizontal:  "-",
	Vertical:    "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
	Delimiter:   " | ",
	Ellipsis:    "~",
	BarFull:     "#",
	BarEmpty:    ".",
	Branch:      "|- ",
	LastBranch:  "`- ",
	Pipe:        "|  ",
	Check:       "+",
	Cross:       "x",
	Warn:        "!",
	Info:        "i",
	Pending:     "*",
	Empty:       "o",
	Cancel:      "-",
	Spinner:     []string{"|", "/", "-", "\\"},
}

// defaultStyles is the built-in role palette.
var defaultStyles = map[Role]StyleDef{
	RolePrimary:   {Foreground: PrimaryColor, Bold: true},
	RoleSecondary: {Foreground: SecondaryColor},
	RoleAccent:    {Foreground: AccentColor},
	RoleSuccess:   {Foreground: SuccessColor, Bold: true},
	RoleWarning:   {Foreground: WarningColor, Bold: true},
	RoleError:     {Foreground: ErrorColor, Bold: true},
	RoleInfo:      {Foreground: InfoColor},
	RoleMuted:     {Foreground: MutedColor, Faint: true},
	RoleBorder:    {Foreground: BorderColor},
	RoleKey:       {Foreground: PrimaryColor},
	RoleValue:     {Foreground: TextColor},
	RoleHeader:    {Foreground: HeadingColor, Bold: true},
	RoleText:      {Foreground: TextColor},
}

// DefaultThemeName names the built-in theme.
const DefaultThemeName = "default"

var defaultTheme = NewTheme(DefaultThemeName, defaultStyles, UnicodeGlyphs)

// Default returns the built-in theme. The value is shared and immutable.
func Default() *Theme { return defaultTheme }
