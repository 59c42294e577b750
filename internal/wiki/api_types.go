package wiki

// Wire types for the Action API with formatversion=2.

type apiResponse struct {
	Error *apiError    `json:"error,omitempty"`
	Query *queryResult `json:"query,omitempty"`
	Login *loginResult `json:"login,omitempty"`
	Edit  *editResult  `json:"edit,omitempty"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type queryResult struct {
	Tokens        map[string]string   `json:"tokens,omitempty"`
	UserInfo      *userInfo           `json:"userinfo,omitempty"`
	Notifications *notificationsBlock `json:"notifications,omitempty"`
	Pages         []pageResult        `json:"pages,omitempty"`
}

type userInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type notificationsBlock struct {
	List []notification `json:"list"`
}

type notification struct {
	Type  string `json:"type"`
	RevID int64  `json:"revid"`
	Title struct {
		Full string `json:"full"`
	} `json:"title"`
	Agent struct {
		Name string `json:"name"`
	} `json:"agent"`
	Timestamp struct {
		UTCISO8601 string `json:"utciso8601"`
	} `json:"timestamp"`
}

type pageResult struct {
	Title     string     `json:"title"`
	Revisions []revision `json:"revisions,omitempty"`
}

type revision struct {
	Slots struct {
		Main struct {
			Content string `json:"content"`
		} `json:"main"`
	} `json:"slots"`
}

type loginResult struct {
	Result string `json:"result"`
}

type editResult struct {
	Result string `json:"result"`
}
