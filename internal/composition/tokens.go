package composition

// Brand colors shared by every composition
const (
	GuildBlue      = "#2563EB"
	GuildBlueDark  = "#1D4ED8"
	GuildBlueLight = "#3B82F6"
	GuildTeal      = "#0D9488"
	GuildTealLight = "#14B8A6"
	GuildCoral     = "#F97316"
	GuildGold      = "#F59E0B"
	GuildPurple    = "#8B5CF6"

	RPGDarkBg     = "#1a1a2e"
	RPGMidBg      = "#16213e"
	RPGLightBg    = "#0f3460"
	RPGGreen      = "#00ff41"
	RPGRed        = "#ff0040"
	RPGYellow     = "#ffd700"
	RPGWhite      = "#e0e0e0"
	RPGBorder     = "#c0a040"
	RPGBorderDark = "#806020"

	DarkBg         = "#0a0a0a"
	DarkCard       = "#1a1a1a"
	DarkCardBorder = "#2a2a2a"

	White       = "#FFFFFF"
	Gray400     = "#AEAEB2"
	Gray500     = "#8E8E93"
	Ink         = "#000000"
	Destructive = "#EF4444"
)

// Output format and branding
const (
	FPS    = 30
	Width  = 1080
	Height = 1920

	EndCardDuration = 90
	GuildURL        = "joinguild.app"
)
