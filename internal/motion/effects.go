package motion

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Effect constants
const (
	DefaultCharsPerFrame = 0.5
	CursorBlinkFrames    = 15
	MenuBlinkFrames      = 20
	DefaultFlashDuration = 10
	TextFadeFrames       = 8

	DefaultShakeDuration  = 12
	DefaultShakeIntensity = 10
	DefaultShakeFrequency = 30
)

// Health bar colors
const (
	HealthGreen  = "#00ff41"
	HealthYellow = "#ffd700"
	HealthRed    = "#ff0040"
)

// ===== Typewriter =====

// TypewriterState is the visible part of a typed line
type TypewriterState struct {
	Visible        bool   `json:"visible" yaml:"visible"`
	Text           string `json:"text" yaml:"text"`
	Complete       bool   `json:"complete" yaml:"complete"`
	CursorRendered bool   `json:"cursor_rendered" yaml:"cursor_rendered"`
	CursorVisible  bool   `json:"cursor_visible" yaml:"cursor_visible"`
}

// Typewriter reveals text at charsPerFrame from start. The cursor blinks
// every 15 frames throughout. While typing it keeps its slot in the layout
// (rendered, possibly transparent); once the line is complete it is only
// rendered on the lit half of each blink.
func Typewriter(frame, start int, text string, charsPerFrame float64) TypewriterState {
	if frame < start {
		return TypewriterState{}
	}
	if charsPerFrame <= 0 {
		charsPerFrame = DefaultCharsPerFrame
	}

	runes := []rune(text)
	n := int(math.Floor(float64(frame-start) * charsPerFrame))
	if n > len(runes) {
		n = len(runes)
	}
	complete := n >= len(runes)
	blinkOn := (frame/CursorBlinkFrames)%2 == 0

	return TypewriterState{
		Visible:        true,
		Text:           string(runes[:n]),
		Complete:       complete,
		CursorRendered: blinkOn || !complete,
		CursorVisible:  blinkOn,
	}
}

// MenuCursorVisible blinks a menu cursor every 20 frames, solid for the
// first 15 frames after the menu opens.
func MenuCursorVisible(frame, start int) bool {
	return (frame/MenuBlinkFrames)%2 == 0 || frame-start < 15
}

// ===== Counter =====

var counterPrinter = message.NewPrinter(language.AmericanEnglish)

// Counter is the value of a count-up between start and end, clamped
func Counter(frame, start, end int, from, to float64) float64 {
	if end <= start {
		if frame >= start {
			return to
		}
		return from
	}
	return Fade(float64(frame), float64(start), float64(end), from, to)
}

// FormatCounter renders a counter value. Whole numbers are floored;
// grouping uses en-US separators.
func FormatCounter(v float64, decimals int, grouped bool) string {
	switch {
	case decimals > 0 && grouped:
		return counterPrinter.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
	case decimals > 0:
		return fmt.Sprintf("%.*f", decimals, v)
	case grouped:
		return counterPrinter.Sprintf("%d", int64(math.Floor(v)))
	default:
		return fmt.Sprintf("%d", int64(math.Floor(v)))
	}
}

// ===== Flash =====

// Flash is the opacity of a full-screen flash peaking at peak. The flash
// ramps up over the half duration before the peak and down over the half
// after it; outside that window it is not rendered.
func Flash(frame, peak, duration int) (opacity float64, visible bool) {
	if duration <= 0 {
		duration = DefaultFlashDuration
	}
	half := duration / 2
	if half == 0 {
		if frame == peak {
			return 1, true
		}
		return 0, false
	}
	in, out := peak-half, peak+half
	if frame < in || frame > out {
		return 0, false
	}
	f := float64(frame)
	if frame <= peak {
		return Fade(f, float64(in), float64(peak), 0, 1), true
	}
	return Fade(f, float64(peak), float64(out), 1, 0), true
}

// ===== Screen shake =====

// ShakeParams configures a screen shake
type ShakeParams struct {
	Start     int
	Duration  int
	Intensity float64
	Frequency float64
}

// Shake returns the x/y displacement in pixels. Intensity decays
// quadratically to zero over the duration.
func Shake(frame int, p ShakeParams) (x, y float64) {
	if p.Duration <= 0 {
		p.Duration = DefaultShakeDuration
	}
	if p.Intensity == 0 {
		p.Intensity = DefaultShakeIntensity
	}
	if p.Frequency == 0 {
		p.Frequency = DefaultShakeFrequency
	}

	elapsed := frame - p.Start
	if elapsed < 0 || elapsed >= p.Duration {
		return 0, 0
	}
	decay := 1 - float64(elapsed)/float64(p.Duration)
	amp := p.Intensity * decay * decay
	e := float64(elapsed)
	return math.Sin(e*p.Frequency*0.7) * amp, math.Cos(e*p.Frequency*0.9) * amp
}

// ===== Text overlay =====

// TextOverlayOpacity fades an overlay in over the first 8 frames after
// start and out over the last 8 before end. It is not rendered outside
// [start, end].
func TextOverlayOpacity(frame, start, end int) (opacity float64, visible bool) {
	if frame < start || frame > end {
		return 0, false
	}
	f := float64(frame)
	fadeIn := Fade(f, float64(start), float64(start+TextFadeFrames), 0, 1)
	fadeOut := Fade(f, float64(end-TextFadeFrames), float64(end), 1, 0)
	return math.Min(fadeIn, fadeOut), true
}

// ===== HP bar =====

// HPBarParams configures a draining bar
type HPBarParams struct {
	Current float64
	Max     float64
	Start   int
	// End of the drain; when not after Start the bar jumps at Start
	End int
	// StartValue defaults to Max
	StartValue *float64
}

// HPBarState is the bar at one frame
type HPBarState struct {
	Value   float64 `json:"value" yaml:"value"`
	Percent float64 `json:"percent" yaml:"percent"`
	Color   string  `json:"color" yaml:"color"`
}

// HPBar computes the drained value, percentage clamped to [0,100] and the
// health color: green above 60, yellow above 30, red otherwise.
func HPBar(frame int, p HPBarParams) HPBarState {
	from := p.Max
	if p.StartValue != nil {
		from = *p.StartValue
	}

	var value float64
	if p.End > p.Start {
		value = Fade(float64(frame), float64(p.Start), float64(p.End), from, p.Current)
	} else if frame >= p.Start {
		value = p.Current
	} else {
		value = from
	}

	var pct float64
	if p.Max > 0 {
		pct = value / p.Max * 100
	}
	pct = math.Max(0, math.Min(100, pct))
	return HPBarState{Value: value, Percent: pct, Color: HealthColor(pct)}
}

// HealthColor maps a percentage to the bar color
func HealthColor(pct float64) string {
	switch {
	case pct > 60:
		return HealthGreen
	case pct > 30:
		return HealthYellow
	default:
		return HealthRed
	}
}

// ===== Entrances =====

// EndCardState drives the closing brand card
type EndCardState struct {
	LogoScale   float64 `json:"logo_scale" yaml:"logo_scale"`
	LogoOpacity float64 `json:"logo_opacity" yaml:"logo_opacity"`
	URLOffsetY  float64 `json:"url_offset_y" yaml:"url_offset_y"`
	URLOpacity  float64 `json:"url_opacity" yaml:"url_opacity"`
	CTAOffsetY  float64 `json:"cta_offset_y" yaml:"cta_offset_y"`
	CTAOpacity  float64 `json:"cta_opacity" yaml:"cta_opacity"`
}

// EndCard evaluates the end card at frame relative to its own start. The
// URL follows the logo by 6 frames and the call to action by 14.
func EndCard(frame, fps int) EndCardState {
	logo := SpringProgress(frame, 0, fps, SpringEndCardLogo)
	url := SpringProgress(frame, 6, fps, SpringEndCardText)
	cta := SpringProgress(frame, 14, fps, SpringEndCardText)

	return EndCardState{
		LogoScale:   logo,
		LogoOpacity: Interpolate(float64(frame), []float64{0, 8}, []float64{0, 1}, ExtrapolateRight(Clamp)),
		URLOffsetY:  Interpolate(url, []float64{0, 1}, []float64{30, 0}),
		URLOpacity:  Interpolate(url, []float64{0, 1}, []float64{0, 1}),
		CTAOffsetY:  Interpolate(cta, []float64{0, 1}, []float64{40, 0}),
		CTAOpacity:  Interpolate(cta, []float64{0, 1}, []float64{0, 1}),
	}
}

// PopInState is a scale and opacity entrance
type PopInState struct {
	Scale   float64 `json:"scale" yaml:"scale"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
}

// BattleMenu pops the menu in from its corner
func BattleMenu(frame, start, fps int) PopInState {
	p := SpringProgress(frame, start, fps, SpringBattleMenu)
	return PopInState{Scale: p, Opacity: p}
}

// PhoneFrame scales the phone mockup from 0.7 to full size
func PhoneFrame(frame, start, fps int) PopInState {
	p := SpringProgress(frame, start, fps, SpringPhoneFrame)
	return PopInState{
		Scale:   Interpolate(p, []float64{0, 1}, []float64{0.7, 1}),
		Opacity: Interpolate(p, []float64{0, 1}, []float64{0, 1}),
	}
}

// DialogState is the dialog box entrance
type DialogState struct {
	OffsetY float64 `json:"offset_y" yaml:"offset_y"`
	Scale   float64 `json:"scale" yaml:"scale"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
}

// DialogBox slides a bottom dialog up 120px, or scales a centered or top
// dialog in.
func DialogBox(frame, start, fps int, bottom bool) DialogState {
	p := SpringProgress(frame, start, fps, SpringDialogBox)
	if bottom {
		return DialogState{OffsetY: (1 - p) * 120, Scale: 1, Opacity: p}
	}
	return DialogState{Scale: p, Opacity: p}
}

// SplitState positions the two halves of a split screen
type SplitState struct {
	LeftX          float64 `json:"left_x" yaml:"left_x"`
	RightX         float64 `json:"right_x" yaml:"right_x"`
	DividerOpacity float64 `json:"divider_opacity" yaml:"divider_opacity"`
}

// SplitScreen slides the halves in from each side, the right one 3 frames
// late, then fades the divider in between frames 8 and 14.
func SplitScreen(frame, start, fps int, width float64) SplitState {
	half := width / 2
	elapsed := frame - start
	if elapsed < 0 {
		elapsed = 0
	}
	left := SpringProgress(elapsed, 0, fps, SpringSplitScreen)
	right := SpringProgress(elapsed, 3, fps, SpringSplitScreen)
	return SplitState{
		LeftX:          Interpolate(left, []float64{0, 1}, []float64{-half, 0}),
		RightX:         Interpolate(right, []float64{0, 1}, []float64{half, 0}),
		DividerOpacity: Fade(float64(elapsed), 8, 14, 0, 1),
	}
}
