// Package motivation picks the encouragement shown next to today's status
// and the weekly completion rate.
package motivation

// Tier buckets a weekly completion rate for display.
type Tier string

const (
	LevelExcellent Tier = "excellent"
	LevelGood      Tier = "good"
	LevelFair      Tier = "fair"
	LevelLow       Tier = "low"
)

// Daily returns the message for today. hour is the current hour in the
// fixed zone and only matters while today is still pending.
func Daily(completed bool, streak, hour int) string {
	if completed {
		switch {
		case streak >= 7:
			return "Alhamdulillah! Konsistensi Anda luar biasa!"
		case streak >= 3:
			return "Barakallahu fiik! Terus pertahankan!"
		default:
			return "Excellent! Murojaah hari ini selesai!"
		}
	}

	switch {
	case hour < 12:
		return "Selamat pagi! Semangat murojaah hari ini!"
	case hour < 15:
		return "Jangan lupa murojaah hari ini ya!"
	case hour < 18:
		return "Masih ada waktu untuk murojaah hari ini!"
	default:
		return "Yuk selesaikan murojaah hari ini!"
	}
}

func Level(rate int) Tier {
	switch {
	case rate >= 80:
		return LevelExcellent
	case rate >= 60:
		return LevelGood
	case rate >= 40:
		return LevelFair
	default:
		return LevelLow
	}
}

var weekly = map[Tier]string{
	LevelExcellent: "Excellent! Konsistensi Anda sangat baik!",
	LevelGood:      "Good job! Terus tingkatkan konsistensi!",
	LevelFair:      "Keep going! Anda bisa lebih baik lagi!",
	LevelLow:       "Mari semangat lagi untuk minggu depan!",
}

// Weekly returns the message for this week's completion rate.
func Weekly(rate int) string {
	return weekly[Level(rate)]
}
