package astro

import "testing"

func TestResolveSignBoundaries(t *testing.T) {
	cases := []struct {
		lon    float64
		sign   Sign
		degree int
		minute int
	}{
		{0, Aries, 0, 0},
		{29.999, Aries, 29, 59},
		{30, Taurus, 0, 0},
		{45.5, Taurus, 15, 30},
		{179.99, Virgo, 29, 59},
		{180, Libra, 0, 0},
		{355.5, Pisces, 25, 30},
		{359.999, Pisces, 29, 59},
	}
	for _, c := range cases {
		got := ResolveSign(c.lon)
		if got.Sign != c.sign {
			t.Fatalf("lon %v: sign %v, want %v", c.lon, got.Sign, c.sign)
		}
		if got.Degree != c.degree || got.Minute != c.minute {
			t.Fatalf("lon %v: got %d°%d', want %d°%d'", c.lon, got.Degree, got.Minute, c.degree, c.minute)
		}
	}
}

func TestResolveSignWraparound(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 7.3 {
		a := ResolveSign(lon)
		b := ResolveSign(lon + 360)
		if a != b {
			t.Fatalf("lon %v: %+v != %+v after +360", lon, a, b)
		}
	}
}

func TestResolveSignCoversAllTwelve(t *testing.T) {
	seen := make(map[Sign]bool)
	for lon := 15.0; lon < 360; lon += 30 {
		seen[ResolveSign(lon).Sign] = true
	}
	if len(seen) != 12 {
		t.Fatalf("expected 12 distinct signs, got %d", len(seen))
	}
}

func TestNormalizeNegative(t *testing.T) {
	if got := Normalize(-4.1); got < 355.89 || got > 355.91 {
		t.Fatalf("Normalize(-4.1) = %v, want 355.9", got)
	}
	if got := Normalize(720); got != 0 {
		t.Fatalf("Normalize(720) = %v, want 0", got)
	}
}

func TestElementModalityTables(t *testing.T) {
	if Aries.ElementOf() != Fire || Aries.ModalityOf() != Cardinal {
		t.Fatalf("Aries should be cardinal fire")
	}
	if Taurus.ElementOf() != Earth || Taurus.ModalityOf() != Fixed {
		t.Fatalf("Taurus should be fixed earth")
	}
	if Pisces.ElementOf() != Water || Pisces.ModalityOf() != Mutable {
		t.Fatalf("Pisces should be mutable water")
	}
	if Capricorn.ElementOf() != Earth || Capricorn.ModalityOf() != Cardinal {
		t.Fatalf("Capricorn should be cardinal earth")
	}
}
