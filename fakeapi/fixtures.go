package fakeapi

import (
	"time"

	"cinetix-cli/model"
)

// FixtureCinemas returns the demo cinema directory.
func FixtureCinemas() []model.Cinema {
	return []model.Cinema{
		{Id: "cin-grand-indonesia", Name: "CGV Grand Indonesia", Location: "Jl. M.H. Thamrin No.1, Jakarta Pusat", Capacity: 54, Price: 50000},
		{Id: "cin-plaza-senayan", Name: "XXI Plaza Senayan", Location: "Jl. Asia Afrika No.8, Jakarta Pusat", Capacity: 54, Price: 55000},
		{Id: "cin-paris-van-java", Name: "Cinepolis Paris Van Java", Location: "Jl. Sukajadi No.131-139, Bandung", Capacity: 54, Price: 45000},
		{Id: "cin-tunjungan", Name: "XXI Tunjungan Plaza", Location: "Jl. Basuki Rahmat No.8-12, Surabaya", Capacity: 54, Price: 50000},
		{Id: "cin-beachwalk", Name: "Cinemaxx Beachwalk", Location: "Jl. Pantai Kuta, Badung, Bali", Capacity: 54, Price: 60000},
	}
}

// FixtureMovies returns demo movies with three days of showtimes starting
// from now.
func FixtureMovies(now time.Time) []model.Movie {
	show := showtimesFrom(now, 3, []string{"12:30", "15:00", "18:45", "21:15"})
	return []model.Movie{
		{
			Id:          "mov-the-last-reel",
			Title:       "The Last Reel",
			Poster:      "https://images.cinetix.local/posters/the-last-reel.jpg",
			Rating:      "8.4",
			Genre:       []string{"Drama", "Mystery"},
			Director:    "Anya Putri",
			Writer:      []string{"Anya Putri", "Rama Wijaya"},
			Duration:    128,
			Synopsis:    "A projectionist finds a reel that shows events from the next day.",
			ReleaseDate: now.AddDate(0, 0, -14).Format(time.DateOnly),
			Cinema:      "cin-grand-indonesia",
			Showtimes:   show,
		},
		{
			Id:          "mov-monsoon-run",
			Title:       "Monsoon Run",
			Poster:      "https://images.cinetix.local/posters/monsoon-run.jpg",
			Rating:      "7.6",
			Genre:       []string{"Action", "Thriller"},
			Director:    "Dimas Saputra",
			Writer:      []string{"Kirana Lestari"},
			Duration:    112,
			Synopsis:    "A courier has one night to cross a flooded Jakarta.",
			ReleaseDate: now.AddDate(0, 0, -7).Format(time.DateOnly),
			Cinema:      "cin-plaza-senayan",
			Showtimes:   show,
		},
		{
			Id:          "mov-paper-moons",
			Title:       "Paper Moons",
			Poster:      "https://images.cinetix.local/posters/paper-moons.jpg",
			Rating:      "8.1",
			Genre:       []string{"Animation", "Family"},
			Director:    "Sari Hartono",
			Writer:      []string{"Sari Hartono"},
			Duration:    95,
			Synopsis:    "Two siblings fold paper lanterns that carry wishes to the moon.",
			ReleaseDate: now.AddDate(0, 0, -3).Format(time.DateOnly),
			Cinema:      "cin-grand-indonesia",
			Showtimes:   showtimesFrom(now, 2, []string{"10:00", "13:30", "16:00"}),
		},
	}
}

func showtimesFrom(now time.Time, days int, times []string) model.Showtimes {
	st := model.Showtimes{Times: make(map[string][]string, days)}
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i).Format(time.DateOnly)
		st.Dates = append(st.Dates, date)
		st.Times[date] = append([]string(nil), times...)
	}
	return st
}
