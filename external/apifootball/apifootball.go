package apifootball

// Wire shapes for the API-Football v3 REST responses. Every endpoint
// wraps its rows in the same envelope with paging metadata.

type envelope[T any] struct {
	Get        string            `json:"get"`
	Parameters map[string]string `json:"parameters"`
	Errors     any               `json:"errors"`
	Results    int               `json:"results"`
	Paging     paging            `json:"paging"`
	Response   []T               `json:"response"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type fixtureItem struct {
	Fixture struct {
		ID       int64  `json:"id"`
		Date     string `json:"date"`
		Timezone string `json:"timezone"`
		Status   struct {
			Long  string `json:"long"`
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
		Season  int    `json:"season"`
	} `json:"league"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type oddsItem struct {
	Fixture struct {
		ID int64 `json:"id"`
	} `json:"fixture"`
	Bookmakers []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Bets []oddsBet `json:"bets"`
}

type oddsBet struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Values []oddsValue `json:"values"`
}

type oddsValue struct {
	Value string `json:"value"`
	Odd   string `json:"odd"`
}

type countryItem struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

type leagueItem struct {
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
		Logo string `json:"logo"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
	Seasons []struct {
		Year    int  `json:"year"`
		Current bool `json:"current"`
	} `json:"seasons"`
}

type teamItem struct {
	Team struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Code    string `json:"code"`
		Country string `json:"country"`
		Founded int    `json:"founded"`
		Logo    string `json:"logo"`
	} `json:"team"`
}

type teamStatsItem struct {
	Team     teamRef `json:"team"`
	Fixtures struct {
		Played statTriple `json:"played"`
		Wins   statTriple `json:"wins"`
		Loses  statTriple `json:"loses"`
	} `json:"fixtures"`
	Goals struct {
		For     goalsSide `json:"for"`
		Against goalsSide `json:"against"`
	} `json:"goals"`
	FailedToScore statTriple `json:"failed_to_score"`
}

type statTriple struct {
	Home  int `json:"home"`
	Away  int `json:"away"`
	Total int `json:"total"`
}

type goalsSide struct {
	Total statTriple `json:"total"`
}
