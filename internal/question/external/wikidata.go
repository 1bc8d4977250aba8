package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	defaultWikidataEndpoint = "https://query.wikidata.org/sparql"
	defaultUserAgent        = "wikiquiz/1.0 (question supply)"
	defaultResultLimit      = 100
)

// ErrNoTemplate is returned for categories the client has no query for.
var ErrNoTemplate = errors.New("no query template for category")

// Fact is one usable answer/image pair read from the knowledge graph.
type Fact struct {
	Answer string
	Image  string
}

// queryTemplate describes the graph pattern of a category. When related is
// set the answer is the label of ?related instead of the item itself.
type queryTemplate struct {
	pattern string
	related bool
}

var templates = map[string]queryTemplate{
	"Places": {pattern: `
  ?item wdt:P31 wd:Q515; wdt:P18 ?image; wdt:P1082 ?population.
  FILTER(?population > 1000000)`},
	"Art": {pattern: `
  ?item wdt:P31 wd:Q3305213; wdt:P18 ?image; wdt:P170 ?related; wikibase:sitelinks ?links.
  FILTER(?links > 20)`, related: true},
	"Actors": {pattern: `
  ?item wdt:P31 wd:Q5; wdt:P106 wd:Q33999; wdt:P18 ?image; wikibase:sitelinks ?links.
  FILTER(?links > 80)`},
	"Singers": {pattern: `
  ?item wdt:P31 wd:Q5; wdt:P106 wd:Q177220; wdt:P18 ?image; wikibase:sitelinks ?links.
  FILTER(?links > 80)`},
	"Painters": {pattern: `
  ?item wdt:P31 wd:Q5; wdt:P106 wd:Q1028181; wdt:P18 ?image; wikibase:sitelinks ?links.
  FILTER(?links > 60)`},
	"Footballers": {pattern: `
  ?item wdt:P31 wd:Q5; wdt:P106 wd:Q937857; wdt:P18 ?image; wikibase:sitelinks ?links.
  FILTER(?links > 80)`},
	"Flags": {pattern: `
  ?item wdt:P31 wd:Q3624078; wdt:P41 ?image.`},
	"Philosophers": {pattern: `
  ?item wdt:P31 wd:Q5; wdt:P106 wd:Q4964182; wdt:P18 ?image; wikibase:sitelinks ?links.
  FILTER(?links > 60)`},
	"NationalAthletes": {pattern: `
  ?item wdt:P31 wd:Q5; wdt:P27 wd:Q29; wdt:P106/wdt:P279* wd:Q2066131; wdt:P641 ?related; wdt:P18 ?image; wikibase:sitelinks ?links.
  FILTER(?links > 30)`, related: true},
	"Scientists": {pattern: `
  ?item wdt:P31 wd:Q5; wdt:P106 wd:Q901; wdt:P18 ?image; wikibase:sitelinks ?links.
  FILTER(?links > 80)`},
}

// unlabeled matches the bare entity id the label service falls back to.
var unlabeled = regexp.MustCompile(`^Q\d+$`)

// WikidataClient runs category queries against a SPARQL endpoint.
type WikidataClient struct {
	endpoint   string
	userAgent  string
	limit      int
	httpClient *http.Client
}

func NewWikidataClient(endpoint, userAgent string, limit int, httpClient *http.Client) *WikidataClient {
	if endpoint == "" {
		endpoint = defaultWikidataEndpoint
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if limit <= 0 {
		limit = defaultResultLimit
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &WikidataClient{
		endpoint:   endpoint,
		userAgent:  userAgent,
		limit:      limit,
		httpClient: httpClient,
	}
}

// Query renders the SPARQL text for category.
func (c *WikidataClient) Query(category string) (string, error) {
	tpl, ok := templates[category]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoTemplate, category)
	}
	answer := "?itemLabel"
	if tpl.related {
		answer = "?relatedLabel"
	}
	return fmt.Sprintf(`SELECT DISTINCT %s ?image WHERE {%s
  SERVICE wikibase:label { bd:serviceParam wikibase:language "es,en". }
}
ORDER BY MD5(CONCAT(STR(?item), STR(NOW())))
LIMIT %d`, answer, tpl.pattern, c.limit), nil
}

type sparqlBinding struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlBinding `json:"bindings"`
	} `json:"results"`
}

// Fetch returns deduplicated facts for category. Rows without a readable
// label or image are skipped.
func (c *WikidataClient) Fetch(ctx context.Context, category string) ([]Fact, error) {
	query, err := c.Query(category)
	if err != nil {
		return nil, err
	}
	answerVar := "itemLabel"
	if templates[category].related {
		answerVar = "relatedLabel"
	}

	values := url.Values{}
	values.Set("query", query)
	values.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wikidata non-200: %d", resp.StatusCode)
	}

	var payload sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode wikidata response: %w", err)
	}

	facts := make([]Fact, 0, len(payload.Results.Bindings))
	seen := make(map[string]struct{}, len(payload.Results.Bindings))
	for _, row := range payload.Results.Bindings {
		answer := strings.TrimSpace(row[answerVar].Value)
		image := strings.TrimSpace(row["image"].Value)
		if answer == "" || image == "" || unlabeled.MatchString(answer) {
			continue
		}
		key := answer + "\x00" + image
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		facts = append(facts, Fact{Answer: answer, Image: image})
	}
	return facts, nil
}
