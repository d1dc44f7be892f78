package tui

import "github.com/julianstephens/murojaah/internal/constants"

var labels = map[constants.Language]map[string]string{
	constants.LangIndonesian: {
		"tab_dashboard": "Dashboard",
		"tab_calendar":  "Kalender",
		"today":         "Murojaah hari ini",
		"done":          "✓ Selesai",
		"pending":       "○ Belum",
		"note":          "Catatan",
		"no_note":       "(belum ada catatan)",
		"note_prompt":   "Catatan murojaah hari ini",
		"streak":        "Streak",
		"days":          "hari",
		"week":          "Minggu ini",
		"prayer_now":    "Sekarang",
		"prayer_next":   "Berikutnya",
		"in":            "dalam",
		"save_failed":   "Gagal menyimpan, coba lagi",
		"session_ended": "Sesi berakhir, silakan login kembali",
		"completed":     "Selesai",
		"missed":        "Terlewat",
		"before-signup": "Sebelum daftar",
		"future":        "Akan datang",
	},
	constants.LangEnglish: {
		"tab_dashboard": "Dashboard",
		"tab_calendar":  "Calendar",
		"today":         "Today's murojaah",
		"done":          "✓ Done",
		"pending":       "○ Not yet",
		"note":          "Note",
		"no_note":       "(no note)",
		"note_prompt":   "Today's murojaah note",
		"streak":        "Streak",
		"days":          "days",
		"week":          "This week",
		"prayer_now":    "Now",
		"prayer_next":   "Next",
		"in":            "in",
		"save_failed":   "Could not save, try again",
		"session_ended": "Session ended, please log in again",
		"completed":     "Completed",
		"missed":        "Missed",
		"before-signup": "Before signup",
		"future":        "Upcoming",
	},
}

var monthNames = map[constants.Language][12]string{
	constants.LangIndonesian: {"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember"},
	constants.LangEnglish: {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
}

var weekdayNames = map[constants.Language][7]string{
	constants.LangIndonesian: {"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"},
	constants.LangEnglish:    {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

func lang(l constants.Language) constants.Language {
	if _, ok := labels[l]; ok {
		return l
	}
	return constants.LangIndonesian
}

func text(l constants.Language, key string) string {
	return labels[lang(l)][key]
}
