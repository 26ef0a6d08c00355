package ai

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"dealscope-backend/model"
)

// snapshotMaxBytes bounds how much page text ends up inside a prompt.
const snapshotMaxBytes = 6000

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// urlPatterns maps tokens that show up in listing URLs to make/model pairs.
// Matching is substring-based over the lowercased locator.
var urlPatterns = []struct {
	token   string
	mk, mdl string
}{
	{"accord", "Honda", "Accord"},
	{"civic", "Honda", "Civic"},
	{"cr-v", "Honda", "CR-V"},
	{"camry", "Toyota", "Camry"},
	{"corolla", "Toyota", "Corolla"},
	{"rav4", "Toyota", "RAV4"},
	{"elantra", "Hyundai", "Elantra"},
	{"sonata", "Hyundai", "Sonata"},
	{"cx-5", "Mazda", "CX-5"},
	{"mazda3", "Mazda", "Mazda3"},
	{"sportage", "Kia", "Sportage"},
	{"f-150", "Ford", "F-150"},
	{"f150", "Ford", "F-150"},
	{"silverado", "Chevrolet", "Silverado"},
	{"altima", "Nissan", "Altima"},
}

// listingSeedFromURL derives a best-effort partial listing from the locator
// alone, so the fallback stays non-generic even with zero network access.
func listingSeedFromURL(rawURL string) model.Listing {
	seed := model.Listing{SourceURL: rawURL}
	lowered := strings.ToLower(rawURL)

	for _, p := range urlPatterns {
		if strings.Contains(lowered, p.token) {
			seed.Make = p.mk
			seed.Model = p.mdl
			break
		}
	}

	if m := yearPattern.FindString(rawURL); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			seed.Year = y
		}
	}

	if seed.Year != 0 && seed.Make != "" {
		seed.Title = strings.TrimSpace(strconv.Itoa(seed.Year) + " " + seed.Make + " " + seed.Model)
	}
	return seed
}

// mergeSeed fills gaps in input from seed without overriding anything the
// caller supplied.
func mergeSeed(input, seed model.Listing) model.Listing {
	out := input
	if out.SourceURL == "" {
		out.SourceURL = seed.SourceURL
	}
	if out.Title == "" {
		out.Title = seed.Title
	}
	if out.Year == 0 {
		out.Year = seed.Year
	}
	if out.Make == "" {
		out.Make = seed.Make
	}
	if out.Model == "" {
		out.Model = seed.Model
	}
	return out
}

// fetchSnapshot grabs a bounded, whitespace-collapsed plaintext snapshot of
// the listing page. Any failure yields an empty snapshot, never an error.
func (p *Provider) fetchSnapshot(ctx context.Context, rawURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", browserUserAgent)

	res, err := p.fetcher.Do(req)
	if err != nil {
		return ""
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return ""
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, snapshotMaxBytes*4))
	if err != nil {
		return ""
	}

	collapsed := strings.Join(strings.Fields(string(raw)), " ")
	if len(collapsed) > snapshotMaxBytes {
		collapsed = collapsed[:snapshotMaxBytes]
	}
	return collapsed
}
