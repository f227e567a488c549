package composition

import (
	"fmt"
	"math"

	"github.com/forgo/guild/api/internal/motion"
)

// Catalog builds the campaign videos in render order
func Catalog() []*Composition {
	return []*Composition{
		ChooseYourClass(),
		BossBattle(),
		NewQuest(),
		AngiCosts(),
		SpotsTaken(),
		CompetitorSignedUp(),
		RedFlags(),
	}
}

func newComposition(id, title string, seconds int, cta string) *Composition {
	return &Composition{
		ID:               id,
		Title:            title,
		DurationInFrames: seconds * FPS,
		FPS:              FPS,
		Width:            Width,
		Height:           Height,
		DefaultProps:     endProps(cta),
	}
}

const foundingCTA = "First 100 contractors: $25/mo forever"

// ===== RPG videos =====

var tradeClasses = []string{"PLUMBER", "ELECTRICIAN", "ROOFER", "HANDYMAN"}

// ChooseYourClass is the character-select video: four trade cards, a
// cursor that settles on the plumber, a profile and a first quest.
func ChooseYourClass() *Composition {
	c := newComposition("ChooseYourClass", "Choose Your Class", 25, foundingCTA)
	c.Scenes = []Scene{
		{Name: "title", Start: 0, End: 30},
		{Name: "cards", Start: 30, End: 90},
		{Name: "cursor", Start: 90, End: 240},
		{Name: "zoom", Start: 240, End: 300},
		{Name: "profile", Start: 300, End: 420},
		{Name: "quest_awaits", Start: 420, End: 480},
		{Name: "quest_board", Start: 480, End: 570},
		{Name: "quest_accepted", Start: 570, End: 630},
		{Name: "value_prop", Start: 630, End: 660},
		{Name: "end_card", Start: 660, End: 750},
	}

	titleSpring := motion.SpringConfig{Damping: 10, Stiffness: 80, Mass: 0.6}
	cardSpring := motion.SpringConfig{Damping: 12, Stiffness: 100, Mass: 0.7}

	c.Layers = []Layer{
		background(RPGDarkBg),
		{
			Name: "title", End: 270,
			Eval: func(frame, fps int) map[string]any {
				opacity := motion.Interpolate(float64(frame), []float64{0, 20}, []float64{0, 1}, motion.ExtrapolateRight(motion.Clamp))
				if frame >= 240 {
					opacity = motion.Fade(float64(frame), 240, 270, 1, 0)
				}
				return map[string]any{
					"text":    "CHOOSE YOUR CLASS",
					"scale":   motion.SpringProgress(frame, 0, fps, titleSpring),
					"opacity": opacity,
				}
			},
		},
		{
			Name: "class_cards", Start: 30, End: 300,
			Eval: func(frame, fps int) map[string]any {
				cards := make([]map[string]any, len(tradeClasses))
				for i, name := range tradeClasses {
					slide := motion.SpringProgress(frame, 30+i*15, fps, cardSpring)
					cards[i] = map[string]any{
						"name":       name,
						"slide":      slide,
						"stats_fill": classStatsFill(frame, i),
						"selected":   frame >= 240 && i == 0,
					}
				}
				return map[string]any{"cards": cards}
			},
		},
		{
			Name: "cursor", Start: 90, End: 240,
			Eval: func(frame, fps int) map[string]any {
				return map[string]any{
					"index":  ((frame - 90) / 30) % len(tradeClasses),
					"bounce": math.Sin(float64(frame)*0.3) * 5,
				}
			},
		},
		flashLayer("select_flash", 250, 12, RPGYellow),
		{
			Name: "profile", Start: 300, End: 480,
			Eval: func(frame, fps int) map[string]any {
				p := motion.SpringProgress(frame, 300, fps, cardSpring)
				return map[string]any{
					"class":    tradeClasses[0],
					"opacity":  p,
					"offset_y": motion.Interpolate(p, []float64{0, 1}, []float64{60, 0}),
				}
			},
		},
		overlayLayer("quest_awaits", "A NEW QUEST AWAITS", 420, 479),
		flashLayer("board_flash", 482, 8, ""),
		{
			Name: "quest_board", Start: 480, End: 660,
			Eval: func(frame, fps int) map[string]any {
				return map[string]any{
					"opacity":  motion.Fade(float64(frame), 480, 495, 0, 1),
					"accepted": frame >= 570,
				}
			},
		},
		springLayer("quest_accepted", "QUEST ACCEPTED!", 570, 630, motion.SpringConfig{Damping: 10, Stiffness: 120, Mass: 0.6}),
		{
			Name: "value_prop", Start: 630, End: 660,
			Eval: func(frame, fps int) map[string]any {
				p := motion.SpringProgress(frame, 630, fps, motion.DefaultSpring)
				return map[string]any{
					"lines":   []string{"No lead fees.", "No commissions.", "$25/mo"},
					"scale":   p,
					"opacity": motion.Fade(float64(frame), 630, 640, 0, 1),
				}
			},
		},
		endCardLayer(660, foundingCTA, true),
	}
	return c
}

// classStatsFill is how full a card's stat bars are: a small fill during
// the entrance, full while the cursor rests on the card, and full for the
// chosen class after selection.
func classStatsFill(frame, card int) float64 {
	switch {
	case frame < 90:
		return motion.Fade(float64(frame), float64(30+card*15), 80, 0, 0.3)
	case frame < 240:
		cycle := frame - 90
		if (cycle/30)%len(tradeClasses) == card {
			return motion.Interpolate(float64(cycle%30), []float64{0, 15}, []float64{0.3, 1}, motion.ExtrapolateRight(motion.Clamp))
		}
		return 0.3
	case card == 0:
		return 1
	default:
		return 0.3
	}
}

// BossBattle pits the player against The Middleman: two fee attacks drain
// profit, Guild refills it and defeats the boss.
func BossBattle() *Composition {
	c := newComposition("BossBattle", "Boss Battle", 30, foundingCTA)
	c.Scenes = []Scene{
		{Name: "boss_intro", Start: 0, End: 150},
		{Name: "middleman_attacks", Start: 150, End: 360},
		{Name: "guild_power_up", Start: 360, End: 600},
		{Name: "victory", Start: 600, End: 810},
		{Name: "end_card", Start: 810, End: 900},
	}

	const hp = 10000.0

	c.Layers = []Layer{
		background(RPGDarkBg),
		shakeLayer("shake_lead_fee", motion.ShakeParams{Start: 180, Duration: 15, Intensity: 14}),
		shakeLayer("shake_service_fee", motion.ShakeParams{Start: 270, Duration: 15, Intensity: 14}),
		shakeLayer("shake_guild_strike", motion.ShakeParams{Start: 420, Duration: 20, Intensity: 16}),
		{
			Name: "boss_title", End: 150,
			Eval: func(frame, fps int) map[string]any {
				flicker := 1.0
				if frame > 30 && frame < 60 && (frame/3)%2 != 0 {
					flicker = 0.7
				}
				scale := motion.SpringProgress(frame, 30, fps, motion.SpringConfig{Damping: 8, Stiffness: 200, Mass: 0.5})
				return map[string]any{
					"text":    "BOSS BATTLE",
					"scale":   scale * 1.2,
					"opacity": motion.Interpolate(float64(frame), []float64{30, 45, 120, 150}, []float64{0, 1, 1, 0}, motion.Clamped()) * flicker,
				}
			},
		},
		{
			Name: "boss", Start: 20, End: 810,
			Eval: func(frame, fps int) map[string]any {
				opacity := 1.0
				if frame >= 600 {
					opacity = motion.Fade(float64(frame), 600, 720, 1, 0)
					if frame < 720 && (frame/4)%2 != 0 {
						opacity *= 0.3
					}
				}
				shakeX := 0.0
				if frame >= 420 && frame < 500 {
					shakeX = math.Sin(float64(frame)*25) * motion.Fade(float64(frame), 420, 500, 12, 0)
				}
				return map[string]any{
					"scale":   motion.SpringProgress(frame, 20, fps, motion.SpringConfig{Damping: 10, Stiffness: 100, Mass: 0.8}),
					"hurt":    frame >= 600,
					"bob":     math.Sin(float64(frame)*0.08) * 8,
					"shake_x": shakeX,
					"opacity": opacity,
				}
			},
		},
		hpBarLayer("boss_hp", "THE MIDDLEMAN", RPGRed, 80, 810, hp,
			[]float64{450, 600}, []float64{hp, 0}),
		hpBarLayer("player_hp", "YOUR PROFIT", "", 100, 810, hp,
			[]float64{180, 220, 270, 320, 420, 480},
			[]float64{hp, hp * 0.7, hp * 0.7, hp * 0.2, hp * 0.2, hp}),
		damageLayer("damage_lead_fee", "-$500", 185, ""),
		dialogLayer("dialog_lead_fee", "BATTLE", 190, 260, true),
		typewriterLayer("text_lead_fee", 194, 260, "The Middleman uses LEAD FEE! -$500 per lead!", 0.8, RPGWhite),
		damageLayer("damage_service_fee", "-30%", 275, ""),
		dialogLayer("dialog_service_fee", "BATTLE", 275, 345, true),
		typewriterLayer("text_service_fee", 279, 345, "The Middleman uses SERVICE FEE! -30% of revenue!", 0.8, RPGWhite),
		battleMenuLayer("battle_menu", 330, 400, []string{"FIGHT", "GUILD", "ITEM", "RUN"}, func(frame int) int {
			if frame < 380 {
				return 0
			}
			return 1
		}),
		flashLayer("guild_flash", 395, 12, ""),
		{
			Name: "guild_discovered", Start: 400, End: 501,
			Eval: func(frame, fps int) map[string]any {
				e := float64(frame - 400)
				return map[string]any{
					"text":    "You discovered GUILD!",
					"scale":   motion.SpringProgress(frame, 400, fps, motion.SpringConfig{Damping: 10, Stiffness: 140, Mass: 0.5}),
					"opacity": motion.Interpolate(e, []float64{0, 5, 80, 100}, []float64{0, 1, 1, 0}, motion.Clamped()),
				}
			},
		},
		damageLayer("damage_guild", "-9999", 460, GuildBlue),
		dialogLayer("dialog_guild", "GUILD", 480, 590, true),
		typewriterLayer("text_guild", 484, 590, "$0 lead fees. $0 commissions. $25/mo flat.", 0.7, RPGGreen),
		damageLayer("damage_critical", "CRITICAL!", 500, RPGYellow),
		flashLayer("defeat_flash", 625, 14, ""),
		{
			Name: "victory", Start: 640, End: 810,
			Eval: func(frame, fps int) map[string]any {
				e := float64(frame - 640)
				return map[string]any{
					"text":    "VICTORY!",
					"scale":   motion.SpringProgress(frame, 640, fps, motion.SpringConfig{Damping: 8, Stiffness: 160, Mass: 0.6}) * 1.3,
					"opacity": motion.Interpolate(e, []float64{0, 8}, []float64{0, 1}, motion.ExtrapolateRight(motion.Clamp)),
				}
			},
		},
		{
			Name: "coin_rain", Start: 650, End: 810,
			Eval: func(frame, fps int) map[string]any {
				return map[string]any{"coins": coinRain(frame - 650)}
			},
		},
		dialogLayer("dialog_victory", "SYSTEM", 670, 800, true),
		typewriterLayer("text_victory", 674, 800, "You defeated The Middleman! Loot: Your Full Profit", 0.6, RPGYellow),
		flashLayer("end_flash", 810, 10, ""),
		endCardLayer(810, foundingCTA, true),
	}
	return c
}

// coinRain places 18 falling coins on a fixed pseudo-random pattern
func coinRain(elapsed int) []map[string]any {
	coins := make([]map[string]any, 0, 18)
	for i := 0; i < 18; i++ {
		t := math.Max(0, float64(elapsed-(i*3)%20))
		speed := 3 + float64(i%4)*1.5
		y := -80 + t*speed
		if y > 2000 {
			continue
		}
		coins = append(coins, map[string]any{
			"x":        60 + (i*137+53)%960,
			"y":        y,
			"rotation": t * float64(4+i%5),
			"scale":    0.8 + float64(i%3)*0.3,
			"opacity":  motion.Interpolate(t, []float64{0, 10, 80, 120}, []float64{0, 1, 1, 0.3}, motion.Clamped()),
		})
	}
	return coins
}

// NewQuest announces a homeowner job as a quest the contractor accepts
func NewQuest() *Composition {
	c := newComposition("NewQuest", "New Quest", 20, foundingCTA)
	c.Scenes = []Scene{
		{Name: "notification", Start: 0, End: 120},
		{Name: "quest_board", Start: 120, End: 420},
		{Name: "accept", Start: 420, End: 510},
		{Name: "end_card", Start: 510, End: 600},
	}

	c.Layers = []Layer{
		background(RPGDarkBg),
		dialogLayer("dialog_notification", "QUEST LOG", 15, 120, false),
		typewriterLayer("text_new_quest", 20, 120, "NEW QUEST AVAILABLE!", 0.6, RPGYellow),
		typewriterLayer("text_posted_by", 55, 120, "Posted by: Local Homeowner", 0.8, RPGWhite),
		flashLayer("board_flash", 122, 8, ""),
		{
			Name: "quest_board", Start: 120, End: 420,
			Eval: func(frame, fps int) map[string]any {
				return map[string]any{
					"opacity":  motion.Fade(float64(frame), 120, 135, 0, 1),
					"selected": frame >= 240,
				}
			},
		},
		dialogLayer("dialog_details", "QUEST", 300, 420, true),
		typewriterLayer("text_quest", 305, 420, "QUEST: Kitchen Remodel", 0.8, RPGYellow),
		typewriterLayer("text_reward", 325, 420, "Reward: Full payment, no cut", 0.8, RPGGreen),
		typewriterLayer("text_no_fees", 355, 420, "No lead fees. No middleman.", 0.8, RPGWhite),
		typewriterLayer("text_location", 380, 420, "Location: 2.3 miles away", 0.8, RPGWhite),
		battleMenuLayer("accept_menu", 420, 510, []string{"ACCEPT", "DECLINE"}, func(int) int { return 0 }),
		dialogLayer("dialog_accept", "GUILD", 420, 510, true),
		typewriterLayer("text_accept", 423, 510, "Will you accept this quest?", 0.8, RPGWhite),
		flashLayer("accept_flash", 445, 12, RPGYellow),
		springLayer("quest_accepted", "QUEST ACCEPTED!", 460, 510, motion.SpringConfig{Damping: 10, Stiffness: 120, Mass: 0.6}),
		endCardLayer(510, foundingCTA, true),
	}
	return c
}

// ===== Motion graphics videos =====

type lineItem struct {
	Label string
	Value int
}

var angiLineItems = []lineItem{
	{"Lead Fees", 300},
	{"Service Fees (15-20%)", 450},
	{"Advertising Boost", 200},
	{"Premium Listing", 100},
}

// AngiCosts adds up a month of lead platform fees and compares the
// year against Guild's flat price.
func AngiCosts() *Composition {
	const cta = "Save $12,300/year -- First 100 get $25/mo forever"
	c := newComposition("AngiCosts", "What Angi Actually Costs You", 25, cta)
	c.Scenes = []Scene{
		{Name: "hook", Start: 0, End: 90},
		{Name: "calculator", Start: 90, End: 360},
		{Name: "annual", Start: 360, End: 480},
		{Name: "split_screen", Start: 480, End: 660},
		{Name: "savings", Start: 660, End: 750},
	}

	itemSpring := motion.SpringConfig{Damping: 14, Stiffness: 120, Mass: 0.7}
	totalSpring := motion.SpringConfig{Damping: 12, Stiffness: 100, Mass: 0.8}

	c.Layers = []Layer{
		background(DarkBg),
		{
			Name: "hook", End: 90,
			Eval: func(frame, fps int) map[string]any {
				title := motion.SpringProgress(frame, 0, fps, motion.SpringConfig{Damping: 14, Stiffness: 100, Mass: 0.8})
				sub := motion.SpringProgress(frame, 12, fps, motion.SpringEndCardText)
				return map[string]any{
					"title":             "What Angi Actually Costs You",
					"subtitle":          "Let's do the math",
					"title_offset_y":    motion.Interpolate(title, []float64{0, 1}, []float64{60, 0}),
					"title_opacity":     title,
					"subtitle_offset_y": motion.Interpolate(sub, []float64{0, 1}, []float64{40, 0}),
					"subtitle_opacity":  sub,
				}
			},
		},
		{
			Name: "line_items", Start: 90, End: 360,
			Eval: func(frame, fps int) map[string]any {
				items := make([]map[string]any, len(angiLineItems))
				for i, it := range angiLineItems {
					p := motion.SpringProgress(frame, 90+i*30, fps, itemSpring)
					items[i] = map[string]any{
						"label":   it.Label,
						"amount":  fmt.Sprintf("$%d/mo", it.Value),
						"x":       motion.Interpolate(p, []float64{0, 1}, []float64{400, 0}),
						"opacity": p,
					}
				}
				total := motion.SpringProgress(frame, 220, fps, totalSpring)
				return map[string]any{
					"heading":       "Monthly Cost Breakdown",
					"items":         items,
					"total_opacity": total,
					"total_scale":   motion.Interpolate(total, []float64{0, 1}, []float64{0.8, 1}),
				}
			},
		},
		counterLayer("monthly_total", 220, 265, 0, 1050, "$", "/mo"),
		counterLayer("annual_total", 375, 425, 0, 12600, "$", "/year"),
		splitLayer("split_screen", 480, 660, "Angi: $1,050/mo", "Guild: $25/mo"),
		overlayLayer("keep_everything", "You keep: 100%", 540, 659),
		springLayer("savings", "Save $12,300/year", 660, 690, motion.SpringCounter),
		endCardLayer(690, cta, false),
	}
	return c
}

type signup struct {
	Name     string
	Location string
}

var recentSignups = []signup{
	{"Mike S.", "Austin, TX"},
	{"Sarah K.", "Denver, CO"},
	{"James R.", "Miami, FL"},
	{"David L.", "Seattle, WA"},
	{"Chris P.", "Phoenix, AZ"},
}

// SpotsTaken counts the founding spots already claimed and shows the
// latest contractors joining across the country.
func SpotsTaken() *Composition {
	const cta = "Only 22 spots left — $25/mo forever"
	c := newComposition("SpotsTaken", "Spots Taken", 20, cta)
	c.Scenes = []Scene{
		{Name: "counter", Start: 0, End: 180},
		{Name: "notifications", Start: 180, End: 360},
		{Name: "map", Start: 360, End: 480},
		{Name: "urgency", Start: 480, End: 510},
		{Name: "end_card", Start: 510, End: 600},
	}

	notifySpring := motion.SpringConfig{Damping: 14, Stiffness: 100, Mass: 0.7}

	c.Layers = []Layer{
		background(DarkBg),
		{
			Name: "spots_counter", End: 180,
			Eval: func(frame, fps int) map[string]any {
				v := motion.Counter(frame, 5, 150, 0, 73)
				return map[string]any{
					"value":    v,
					"text":     motion.FormatCounter(v, 0, false),
					"progress": motion.Fade(float64(frame), 10, 150, 0, 0.73),
					"label":    "73% full",
					"scale":    motion.SpringProgress(frame, 0, fps, motion.SpringCounter),
				}
			},
		},
		{
			Name: "notifications", Start: 180, End: 360,
			Eval: func(frame, fps int) map[string]any {
				visible := make([]map[string]any, 0, len(recentSignups))
				for i, s := range recentSignups {
					start := 180 + i*30
					if frame < start {
						break
					}
					p := motion.SpringProgress(frame, start, fps, notifySpring)
					visible = append(visible, map[string]any{
						"name":     s.Name,
						"location": s.Location,
						"x":        motion.Interpolate(p, []float64{0, 1}, []float64{Width, 0}),
						"opacity":  p,
					})
				}
				bg := motion.Counter(frame, 180, 330, 73, 78)
				return map[string]any{
					"heading":       "Live Activity",
					"items":         visible,
					"members_count": math.Floor(bg),
				}
			},
		},
		{
			Name: "map", Start: 360, End: 480,
			Eval: func(frame, fps int) map[string]any {
				return map[string]any{
					"caption": "Contractors across 23 states",
					"opacity": motion.SpringProgress(frame, 360, fps, motion.SpringSplitScreen),
					"dots":    motion.SpringProgress(frame, 390, fps, motion.DefaultSpring),
					"members": "78 members and growing",
				}
			},
		},
		springLayer("urgency", "Only 22 spots left", 480, 510, motion.SpringConfig{Damping: 10, Stiffness: 120, Mass: 0.6}),
		endCardLayer(510, cta, false),
	}
	return c
}

// CompetitorSignedUp plays a lock-screen notification that a nearby
// competitor joined, then compares their numbers to yours.
func CompetitorSignedUp() *Composition {
	const cta = "Your competitors won't wait. Will you?"
	c := newComposition("CompetitorSignedUp", "Competitor Signed Up", 20, cta)
	c.Scenes = []Scene{
		{Name: "notification", Start: 0, End: 120},
		{Name: "profile", Start: 120, End: 300},
		{Name: "earnings", Start: 300, End: 450},
		{Name: "cta", Start: 450, End: 510},
		{Name: "end_card", Start: 510, End: 600},
	}

	c.Layers = []Layer{
		background(DarkBg),
		phoneLayer("phone", 0, 450),
		{
			Name: "lock_screen", End: 130,
			Eval: func(frame, fps int) map[string]any {
				p := motion.SpringProgress(frame, 20, fps, motion.SpringDialogBox)
				return map[string]any{
					"date":         "Monday, February 16",
					"title":        "Your competitor just joined Guild",
					"hint":         "Tap to see their profile",
					"notification": p,
					"opacity":      motion.Fade(float64(frame), 115, 130, 1, 0),
				}
			},
		},
		{
			Name: "competitor_profile", Start: 120, End: 310,
			Eval: func(frame, fps int) map[string]any {
				return map[string]any{
					"rating":  "4.9 (127 reviews)",
					"badge":   "Founding Member - $25/mo locked in",
					"entered": motion.SpringProgress(frame, 120, fps, motion.SpringPhoneFrame),
					"opacity": motion.Fade(float64(frame), 290, 310, 1, 0),
				}
			},
		},
		{
			Name: "earnings", Start: 300, End: 450,
			Eval: func(frame, fps int) map[string]any {
				return map[string]any{
					"heading": "THEM vs. YOU",
					"opacity": motion.Fade(float64(frame), 430, 450, 1, 0),
				}
			},
		},
		counterLayer("their_monthly_jobs", 315, 355, 0, 12, "", ""),
		overlayLayer("found_first", "They found Guild before you did.", 450, 509),
		springLayer("lock_in", "Join Guild before they lock in your market", 470, 510, motion.SpringEndCardText),
		endCardLayer(510, cta, false),
	}
	return c
}

var redFlags = []string{
	"Paying $300 for a lead that ghosted me",
	"Platform takes 20% AFTER I already paid for the lead",
	"Same lead sold to 5 other contractors",
	"$65/lead just to get a 'maybe'",
	"Annual spend: $12,000 in fees alone",
	"Customer thinks I charge too much (it's the platform fees)",
	"'Boost your profile' = pay more to see your own leads",
}

// Red flag card timing
const (
	redFlagStart      = 60
	redFlagFrames     = 47
	redFlagTransition = 12
)

// RedFlags flips through seven lead-platform complaints, stacks them and
// totals the year.
func RedFlags() *Composition {
	const cta = "$25/mo forever — First 100 founding members"
	c := newComposition("RedFlags", "Red Flags", 20, cta)
	c.Scenes = []Scene{
		{Name: "hook", Start: 0, End: 60},
		{Name: "cards", Start: 60, End: 390},
		{Name: "stack", Start: 390, End: 450},
		{Name: "solution", Start: 450, End: 510},
		{Name: "end_card", Start: 510, End: 600},
	}

	c.Layers = []Layer{
		background(DarkBg),
		{
			Name: "hook", End: 60,
			Eval: func(frame, fps int) map[string]any {
				f := float64(frame)
				return map[string]any{
					"text":    "My lead fees as red flags",
					"scale":   motion.SpringProgress(frame, 0, fps, motion.SpringConfig{Damping: 10, Stiffness: 100, Mass: 0.7}),
					"opacity": math.Min(motion.Fade(f, 0, 12, 0, 1), motion.Fade(f, 48, 60, 1, 0)),
				}
			},
		},
	}
	for i, flag := range redFlags {
		c.Layers = append(c.Layers, redFlagCard(i, flag))
	}
	c.Layers = append(c.Layers,
		Layer{
			Name: "flag_stack", Start: 390, End: 450,
			Eval: func(frame, fps int) map[string]any {
				return map[string]any{
					"caption": "Every. Single. One.",
					"flags":   len(redFlags),
					"scale":   motion.SpringProgress(frame, 390, fps, motion.SpringCounter),
				}
			},
		},
		counterLayer("annual_cost", 410, 435, 0, 12600, "$", "+"),
		Layer{
			Name: "solution", Start: 450, End: 510,
			Eval: func(frame, fps int) map[string]any {
				return map[string]any{
					"text":     "Be the green flag.",
					"subtitle": "Keep 100%.",
					"scale":    motion.SpringProgress(frame, 450, fps, motion.SpringConfig{Damping: 12, Stiffness: 90, Mass: 0.7}),
				}
			},
		},
		endCardLayer(510, cta, false),
	)
	return c
}

// redFlagCard springs card i in and flicks it away during the last
// transition frames of its slot.
func redFlagCard(i int, text string) Layer {
	start := redFlagStart + i*redFlagFrames
	end := start + redFlagFrames
	enter := motion.SpringConfig{Damping: 14, Stiffness: 180, Mass: 0.5}
	exit := motion.SpringConfig{Damping: 16, Stiffness: 200, Mass: 0.4}

	return Layer{
		Name:  fmt.Sprintf("red_flag_%d", i+1),
		Start: start - 5,
		End:   end + redFlagTransition,
		Eval: func(frame, fps int) map[string]any {
			in := motion.SpringProgress(frame, start, fps, enter)
			out := motion.SpringProgress(frame, end-redFlagTransition, fps, exit)
			return map[string]any{
				"index":    i + 1,
				"text":     text,
				"scale":    in,
				"x":        motion.Interpolate(out, []float64{0, 1}, []float64{0, -Width}),
				"rotation": motion.Interpolate(out, []float64{0, 1}, []float64{0, -15}),
				"opacity":  motion.Interpolate(out, []float64{0, 1}, []float64{1, 0}) * math.Min(1, in),
			}
		},
	}
}
