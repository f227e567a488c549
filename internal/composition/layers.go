package composition

import (
	"math"

	"github.com/forgo/guild/api/internal/motion"
)

// Layer builders for the elements the compositions share. Every builder
// takes absolute frames; layers that are nested inside a sequence in the
// edit are expressed with the sequence offset already added.

func background(color string) Layer {
	return Layer{
		Name: "background",
		Eval: func(frame, fps int) map[string]any {
			return map[string]any{"color": color}
		},
	}
}

func flashLayer(name string, peak, duration int, color string) Layer {
	if duration <= 0 {
		duration = motion.DefaultFlashDuration
	}
	half := duration / 2
	if color == "" {
		color = White
	}
	return Layer{
		Name:  name,
		Start: peak - half,
		End:   peak + half + 1,
		Eval: func(frame, fps int) map[string]any {
			opacity, _ := motion.Flash(frame, peak, duration)
			return map[string]any{"opacity": opacity, "color": color}
		},
	}
}

func shakeLayer(name string, p motion.ShakeParams) Layer {
	return Layer{
		Name:  name,
		Start: p.Start,
		End:   p.Start + p.Duration,
		Eval: func(frame, fps int) map[string]any {
			x, y := motion.Shake(frame, p)
			return map[string]any{"x": x, "y": y}
		},
	}
}

func typewriterLayer(name string, start, end int, text string, cpf float64, color string) Layer {
	return Layer{
		Name:  name,
		Start: start,
		End:   end,
		Eval: func(frame, fps int) map[string]any {
			s := motion.Typewriter(frame, start, text, cpf)
			return map[string]any{
				"text":            s.Text,
				"complete":        s.Complete,
				"cursor_rendered": s.CursorRendered,
				"cursor_visible":  s.CursorVisible,
				"color":           color,
			}
		},
	}
}

func dialogLayer(name, speaker string, start, end int, bottom bool) Layer {
	return Layer{
		Name:  name,
		Start: start,
		End:   end,
		Eval: func(frame, fps int) map[string]any {
			s := motion.DialogBox(frame, start, fps, bottom)
			return map[string]any{
				"speaker":  speaker,
				"offset_y": s.OffsetY,
				"scale":    s.Scale,
				"opacity":  s.Opacity,
			}
		},
	}
}

// damageLayer floats a hit number up 80px while it pops and fades
func damageLayer(name, text string, start int, color string) Layer {
	if color == "" {
		color = RPGRed
	}
	return Layer{
		Name:  name,
		Start: start,
		End:   start + 46,
		Eval: func(frame, fps int) map[string]any {
			e := float64(frame - start)
			return map[string]any{
				"text":     text,
				"color":    color,
				"offset_y": motion.Interpolate(e, []float64{0, 45}, []float64{0, -80}, motion.ExtrapolateRight(motion.Clamp)),
				"opacity":  motion.Interpolate(e, []float64{0, 5, 30, 45}, []float64{0, 1, 1, 0}, motion.Clamped()),
				"scale":    motion.Interpolate(e, []float64{0, 8, 15}, []float64{0.5, 1.3, 1}, motion.ExtrapolateRight(motion.Clamp)),
			}
		},
	}
}

// hpBarLayer shows a labelled bar whose value follows the keyframes,
// fading in over the first 20 frames
func hpBarLayer(name, label, color string, start, end int, maxValue float64, keys, values []float64) Layer {
	return Layer{
		Name:  name,
		Start: start,
		End:   end,
		Eval: func(frame, fps int) map[string]any {
			current := motion.Interpolate(float64(frame), keys, values, motion.Clamped())
			bar := motion.HPBar(frame, motion.HPBarParams{Current: current, Max: maxValue})
			props := map[string]any{
				"label":   label,
				"value":   math.Round(bar.Value),
				"max":     maxValue,
				"percent": bar.Percent,
				"color":   bar.Color,
				"opacity": motion.Fade(float64(frame), float64(start), float64(start+20), 0, 1),
			}
			if color != "" {
				props["color"] = color
			}
			return props
		},
	}
}

func counterLayer(name string, start, end int, from, to float64, prefix, suffix string) Layer {
	return Layer{
		Name:  name,
		Start: start,
		Eval: func(frame, fps int) map[string]any {
			v := motion.Counter(frame, start, end, from, to)
			return map[string]any{
				"value": v,
				"text":  prefix + motion.FormatCounter(v, 0, true) + suffix,
			}
		},
	}
}

func battleMenuLayer(name string, start, end int, options []string, selected func(frame int) int) Layer {
	return Layer{
		Name:  name,
		Start: start,
		End:   end,
		Eval: func(frame, fps int) map[string]any {
			s := motion.BattleMenu(frame, start, fps)
			return map[string]any{
				"options":        options,
				"selected":       selected(frame),
				"cursor_visible": motion.MenuCursorVisible(frame, start),
				"scale":          s.Scale,
				"opacity":        s.Opacity,
			}
		},
	}
}

func phoneLayer(name string, start, end int) Layer {
	return Layer{
		Name:  name,
		Start: start,
		End:   end,
		Eval: func(frame, fps int) map[string]any {
			s := motion.PhoneFrame(frame, start, fps)
			return map[string]any{"width": 380, "height": 780, "scale": s.Scale, "opacity": s.Opacity}
		},
	}
}

func splitLayer(name string, start, end int, left, right string) Layer {
	return Layer{
		Name:  name,
		Start: start,
		End:   end,
		Eval: func(frame, fps int) map[string]any {
			s := motion.SplitScreen(frame, start, fps, Width)
			return map[string]any{
				"left":            left,
				"right":           right,
				"left_x":          s.LeftX,
				"right_x":         s.RightX,
				"divider_opacity": s.DividerOpacity,
			}
		},
	}
}

// overlayLayer is text that fades in and out across [start, end]
func overlayLayer(name, text string, start, end int) Layer {
	return Layer{
		Name:  name,
		Start: start,
		End:   end + 1,
		Eval: func(frame, fps int) map[string]any {
			opacity, _ := motion.TextOverlayOpacity(frame, start, end)
			return map[string]any{"text": text, "opacity": opacity}
		},
	}
}

// springLayer pops text in with a spring
func springLayer(name, text string, start, end int, cfg motion.SpringConfig) Layer {
	return Layer{
		Name:  name,
		Start: start,
		End:   end,
		Eval: func(frame, fps int) map[string]any {
			p := motion.SpringProgress(frame, start, fps, cfg)
			return map[string]any{"text": text, "scale": p, "opacity": math.Min(1, p)}
		},
	}
}

func endCardLayer(start int, cta string, rpg bool) Layer {
	return Layer{
		Name:  "end_card",
		Start: start,
		Eval: func(frame, fps int) map[string]any {
			s := motion.EndCard(frame-start, fps)
			return map[string]any{
				"url":          GuildURL,
				"cta":          cta,
				"rpg_style":    rpg,
				"logo_scale":   s.LogoScale,
				"logo_opacity": s.LogoOpacity,
				"url_offset_y": s.URLOffsetY,
				"url_opacity":  s.URLOpacity,
				"cta_offset_y": s.CTAOffsetY,
				"cta_opacity":  s.CTAOpacity,
			}
		},
	}
}

func endProps(cta string) map[string]any {
	return map[string]any{"cta": cta, "url": GuildURL}
}
