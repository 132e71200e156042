package kobis

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BoxOfficeEntry is one ranked movie for a given day or week. Numeric
// fields are kept string-encoded the way the provider sends them.
type BoxOfficeEntry struct {
	RowNumber     string `json:"rnum"`
	Rank          string `json:"rank"`
	RankInten     string `json:"rankInten"`
	RankOldAndNew string `json:"rankOldAndNew"`
	MovieCd       string `json:"movieCd"`
	MovieNm       string `json:"movieNm"`
	OpenDt        string `json:"openDt"`
	SalesAmt      string `json:"salesAmt"`
	SalesShare    string `json:"salesShare"`
	SalesInten    string `json:"salesInten"`
	SalesChange   string `json:"salesChange"`
	SalesAcc      string `json:"salesAcc"`
	AudiCnt       string `json:"audiCnt"`
	AudiInten     string `json:"audiInten"`
	AudiChange    string `json:"audiChange"`
	AudiAcc       string `json:"audiAcc"`
	ScrnCnt       string `json:"scrnCnt"`
	ShowCnt       string `json:"showCnt"`
}

// RankNumber returns the rank as an integer, 0 when unparseable
func (e BoxOfficeEntry) RankNumber() int {
	return int(ParseNumber(e.Rank))
}

// RankChange returns the rank delta against the previous period
func (e BoxOfficeEntry) RankChange() int {
	return int(ParseNumber(e.RankInten))
}

// IsNew checks if the movie entered the ranking in this period
func (e BoxOfficeEntry) IsNew() bool {
	return strings.EqualFold(e.RankOldAndNew, "NEW")
}

// Audience returns the audience count for the period
func (e BoxOfficeEntry) Audience() int64 {
	return ParseNumber(e.AudiCnt)
}

// AudienceAcc returns the cumulative audience count
func (e BoxOfficeEntry) AudienceAcc() int64 {
	return ParseNumber(e.AudiAcc)
}

// Sales returns the sales amount for the period
func (e BoxOfficeEntry) Sales() int64 {
	return ParseNumber(e.SalesAmt)
}

// SalesAccumulated returns the cumulative sales amount
func (e BoxOfficeEntry) SalesAccumulated() int64 {
	return ParseNumber(e.SalesAcc)
}

// SalesSharePercent returns the sales share as a percentage
func (e BoxOfficeEntry) SalesSharePercent() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(e.SalesShare), 64)
	if err != nil {
		return 0
	}
	return v
}

// Screens returns the screen count
func (e BoxOfficeEntry) Screens() int64 {
	return ParseNumber(e.ScrnCnt)
}

// Shows returns the show count
func (e BoxOfficeEntry) Shows() int64 {
	return ParseNumber(e.ShowCnt)
}

// BoxOffice is a ranking together with the envelope metadata
type BoxOffice struct {
	Type         string
	ShowRange    string
	YearWeekTime string
	Entries      []BoxOfficeEntry
}

// WeekGroup selects which part of the week a weekly ranking covers
type WeekGroup int

const (
	// Weekly covers Monday through Sunday
	Weekly WeekGroup = iota
	// Weekend covers Friday through Sunday
	Weekend
	// Weekdays covers Monday through Thursday
	Weekdays
)

// Code returns the provider's weekGb discriminant
func (w WeekGroup) Code() (string, error) {
	switch w {
	case Weekly:
		return "0", nil
	case Weekend:
		return "1", nil
	case Weekdays:
		return "2", nil
	default:
		return "", fmt.Errorf("unknown week group %d", int(w))
	}
}

// String returns the string representation of a WeekGroup
func (w WeekGroup) String() string {
	switch w {
	case Weekly:
		return "weekly"
	case Weekend:
		return "weekend"
	case Weekdays:
		return "weekdays"
	default:
		return "unknown"
	}
}

// ParseWeekGroup parses the string form produced by WeekGroup.String
func ParseWeekGroup(s string) (WeekGroup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly", "week", "0":
		return Weekly, nil
	case "weekend", "1":
		return Weekend, nil
	case "weekdays", "weekday", "2":
		return Weekdays, nil
	default:
		return 0, fmt.Errorf("invalid week group: %s (must be weekly, weekend or weekdays)", s)
	}
}

// Person names a director
type Person struct {
	PeopleNm   string `json:"peopleNm"`
	PeopleNmEn string `json:"peopleNmEn,omitempty"`
}

// Company is a production or distribution company
type Company struct {
	CompanyCd     string `json:"companyCd"`
	CompanyNm     string `json:"companyNm"`
	CompanyNmEn   string `json:"companyNmEn,omitempty"`
	CompanyPartNm string `json:"companyPartNm,omitempty"`
}

// MovieSummary is one catalog search result row
type MovieSummary struct {
	MovieCd     string    `json:"movieCd"`
	MovieNm     string    `json:"movieNm"`
	MovieNmEn   string    `json:"movieNmEn"`
	PrdtYear    string    `json:"prdtYear"`
	OpenDt      string    `json:"openDt"`
	TypeNm      string    `json:"typeNm"`
	PrdtStatNm  string    `json:"prdtStatNm"`
	NationAlt   string    `json:"nationAlt"`
	GenreAlt    string    `json:"genreAlt"`
	RepNationNm string    `json:"repNationNm"`
	RepGenreNm  string    `json:"repGenreNm"`
	Directors   []Person  `json:"directors"`
	Companys    []Company `json:"companys"`
}

// DirectorNames returns the director names joined with ", "
func (m MovieSummary) DirectorNames() string {
	return joinPeople(m.Directors)
}

// Nation is a production nation
type Nation struct {
	NationNm string `json:"nationNm"`
}

// Genre is a genre label
type Genre struct {
	GenreNm string `json:"genreNm"`
}

// Actor is a cast member and the role they play
type Actor struct {
	PeopleNm   string `json:"peopleNm"`
	PeopleNmEn string `json:"peopleNmEn"`
	Cast       string `json:"cast"`
	CastEn     string `json:"castEn"`
}

// ShowType is a screening format
type ShowType struct {
	ShowTypeGroupNm string `json:"showTypeGroupNm"`
	ShowTypeNm      string `json:"showTypeNm"`
}

// Audit is a rating certificate
type Audit struct {
	AuditNo      string `json:"auditNo"`
	WatchGradeNm string `json:"watchGradeNm"`
}

// Staff is a credited crew member
type Staff struct {
	PeopleNm    string `json:"peopleNm"`
	PeopleNmEn  string `json:"peopleNmEn"`
	StaffRoleNm string `json:"staffRoleNm"`
}

// MovieDetail is the full record for one movie
type MovieDetail struct {
	MovieCd    string     `json:"movieCd"`
	MovieNm    string     `json:"movieNm"`
	MovieNmEn  string     `json:"movieNmEn"`
	MovieNmOg  string     `json:"movieNmOg"`
	ShowTm     string     `json:"showTm"`
	PrdtYear   string     `json:"prdtYear"`
	OpenDt     string     `json:"openDt"`
	PrdtStatNm string     `json:"prdtStatNm"`
	TypeNm     string     `json:"typeNm"`
	Nations    []Nation   `json:"nations"`
	Genres     []Genre    `json:"genres"`
	Directors  []Person   `json:"directors"`
	Actors     []Actor    `json:"actors"`
	ShowTypes  []ShowType `json:"showTypes"`
	Companys   []Company  `json:"companys"`
	Audits     []Audit    `json:"audits"`
	Staffs     []Staff    `json:"staffs"`
}

// IsEmpty checks if the record carries no movie identifier
func (m *MovieDetail) IsEmpty() bool {
	return m == nil || strings.TrimSpace(m.MovieCd) == ""
}

// GenreNames returns the genre labels in provider order
func (m *MovieDetail) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		if g.GenreNm != "" {
			names = append(names, g.GenreNm)
		}
	}
	return names
}

// NationNames returns the nation labels in provider order
func (m *MovieDetail) NationNames() []string {
	names := make([]string, 0, len(m.Nations))
	for _, n := range m.Nations {
		if n.NationNm != "" {
			names = append(names, n.NationNm)
		}
	}
	return names
}

// DirectorNames returns the director names joined with ", "
func (m *MovieDetail) DirectorNames() string {
	return joinPeople(m.Directors)
}

// Runtime returns the running time, zero when the provider omits it
func (m *MovieDetail) Runtime() time.Duration {
	return time.Duration(ParseNumber(m.ShowTm)) * time.Minute
}

// CompaniesByPart returns the companies credited with the given role, e.g. 배급사
func (m *MovieDetail) CompaniesByPart(part string) []Company {
	var out []Company
	for _, c := range m.Companys {
		if c.CompanyPartNm == part {
			out = append(out, c)
		}
	}
	return out
}

// WatchGrade returns the first rating certificate label
func (m *MovieDetail) WatchGrade() string {
	for _, a := range m.Audits {
		if a.WatchGradeNm != "" {
			return a.WatchGradeNm
		}
	}
	return ""
}

// SearchResult is one page of catalog search results
type SearchResult struct {
	Movies     []MovieSummary
	TotalCount int
}

// TotalPages returns the number of pages at the given page size
func (r SearchResult) TotalPages(perPage int) int {
	if perPage <= 0 || r.TotalCount <= 0 {
		return 0
	}
	return (r.TotalCount + perPage - 1) / perPage
}

func joinPeople(people []Person) string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		if p.PeopleNm != "" {
			names = append(names, p.PeopleNm)
		}
	}
	return strings.Join(names, ", ")
}

type boxOfficeEnvelope struct {
	BoxOfficeResult struct {
		BoxofficeType       string           `json:"boxofficeType"`
		ShowRange           string           `json:"showRange"`
		YearWeekTime        string           `json:"yearWeekTime"`
		DailyBoxOfficeList  []BoxOfficeEntry `json:"dailyBoxOfficeList"`
		WeeklyBoxOfficeList []BoxOfficeEntry `json:"weeklyBoxOfficeList"`
	} `json:"boxOfficeResult"`
}

type movieListEnvelope struct {
	MovieListResult struct {
		TotCnt    int            `json:"totCnt"`
		Source    string         `json:"source"`
		MovieList []MovieSummary `json:"movieList"`
	} `json:"movieListResult"`
}

type movieInfoEnvelope struct {
	MovieInfoResult struct {
		Source    string       `json:"source"`
		MovieInfo *MovieDetail `json:"movieInfo"`
	} `json:"movieInfoResult"`
}

type faultEnvelope struct {
	FaultInfo *struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	} `json:"faultInfo"`
}
