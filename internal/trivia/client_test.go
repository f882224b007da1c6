package trivia

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI serves the three trivia endpoints from one test server and counts
// the calls to each.
type fakeAPI struct {
	mu            sync.Mutex
	tokenCalls    int
	resetCalls    int
	questionCalls int
	categoryCalls int

	// Overridable per endpoint. The call number starts at 1.
	questionsHandler  func(call int, w http.ResponseWriter, r *http.Request)
	categoriesHandler func(call int, w http.ResponseWriter, r *http.Request)
	resetHandler      func(call int, w http.ResponseWriter, r *http.Request)

	lastQuestionQuery map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.URL.Path {
	case "/api_token.php":
		if r.URL.Query().Get("command") == "reset" {
			f.resetCalls++
			if f.resetHandler != nil {
				f.resetHandler(f.resetCalls, w, r)
				return
			}
			fmt.Fprintf(w, `{"response_code":0,"token":%q}`, r.URL.Query().Get("token"))
			return
		}

		f.tokenCalls++
		fmt.Fprint(w, `{"response_code":0,"token":"tok123"}`)

	case "/api.php":
		f.questionCalls++
		f.lastQuestionQuery = map[string]string{}
		for key, values := range r.URL.Query() {
			f.lastQuestionQuery[key] = values[0]
		}
		if f.questionsHandler != nil {
			f.questionsHandler(f.questionCalls, w, r)
			return
		}
		fmt.Fprint(w, `{"response_code":0,"results":[]}`)

	case "/api_category.php":
		f.categoryCalls++
		if f.categoriesHandler != nil {
			f.categoriesHandler(f.categoryCalls, w, r)
			return
		}
		fmt.Fprint(w, `{"trivia_categories":[{"id":9,"name":"General Knowledge"}]}`)

	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) counts() (token, reset, questions, categories int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenCalls, f.resetCalls, f.questionCalls, f.categoryCalls
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), Config{
		QuestionsURL:  srv.URL + "/api.php",
		CategoriesURL: srv.URL + "/api_category.php",
		TokenURL:      srv.URL + "/api_token.php",
		Timeout:       2 * time.Second,
		RetryMax:      0,
		RetryWaitMin:  time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

const questionJSON = `{
	"type": "multiple",
	"difficulty": "medium",
	"category": "Science%20%26%20Nature",
	"question": "What is H2O?",
	"correct_answer": "Water",
	"incorrect_answers": ["Oxygen", "&quot;Air&quot;", "Salt"]
}`

func TestNewClientAcquiresToken(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	assert.Equal(t, "tok123", client.SessionToken())

	token, _, _, _ := api.counts()
	assert.Equal(t, 1, token)
}

func TestNewClientTokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(context.Background(), Config{
		TokenURL:     srv.URL + "/api_token.php",
		RetryMax:     0,
		RetryWaitMin: time.Millisecond,
	}, nil)
	require.Error(t, err)
	assert.Equal(t, "Request failed: Access denied", err.Error())
}

func TestNewClientBlankToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response_code":0,"token":""}`)
	}))
	defer srv.Close()

	_, err := NewClient(context.Background(), Config{
		TokenURL:     srv.URL + "/api_token.php",
		RetryMax:     0,
		RetryWaitMin: time.Millisecond,
	}, nil)
	require.Error(t, err)
	assert.Equal(t, "Invalid token received", err.Error())
	assert.True(t, IsTokenError(err))
}

func TestResetSessionToken(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	token, err := client.ResetSessionToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)
	assert.Equal(t, "tok123", client.SessionToken())

	_, reset, _, _ := api.counts()
	assert.Equal(t, 1, reset)
}

func TestResetSessionTokenWithoutToken(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)
	client.token = ""

	_, err := client.ResetSessionToken(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Cannot reset: No active session token", err.Error())
	assert.True(t, IsTokenError(err))
}

func TestFetchCategories(t *testing.T) {
	api := &fakeAPI{
		categoriesHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"trivia_categories":[
				{"id":9,"name":"General Knowledge"},
				{"id":"17","name":"Science &amp; Nature"},
				{"id":21,"name":""},
				{"name":"No ID"}
			]}`)
		},
	}
	client := newTestClient(t, api)

	categories, err := client.FetchCategories(context.Background())
	require.NoError(t, err)

	// Entries without a usable id or name are dropped. Names are stored as
	// the API sends them; category names arrive already readable.
	assert.Equal(t, map[string]string{
		"General Knowledge":    "9",
		"Science &amp; Nature": "17",
	}, categories)
}

func TestFetchCategoriesEmpty(t *testing.T) {
	api := &fakeAPI{
		categoriesHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"trivia_categories":[]}`)
		},
	}
	client := newTestClient(t, api)

	_, err := client.FetchCategories(context.Background())
	require.Error(t, err)
	assert.Equal(t, "No categories found in API response", err.Error())
}

func TestFetchCategoriesHTTPFailure(t *testing.T) {
	api := &fakeAPI{
		categoriesHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	}
	client := newTestClient(t, api)

	_, err := client.FetchCategories(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch categories: Request failed: Resource not found", err.Error())
	assert.True(t, IsKind(err, KindCategory))
}

func TestFetchQuestionsAmountBounds(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	for _, amount := range []int{0, -1, 51, 100} {
		_, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: amount})
		require.Error(t, err, "amount %d", amount)
		assert.Equal(t, "Amount must be between 1 and 50", err.Error())
	}

	// No request reaches the server for rejected amounts.
	_, _, questions, _ := api.counts()
	assert.Equal(t, 0, questions)

	for _, amount := range []int{1, 50} {
		_, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: amount})
		require.NoError(t, err, "amount %d", amount)
	}
}

func TestFetchQuestionsSendsToken(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	_, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: 10})
	require.NoError(t, err)

	assert.Equal(t, "10", api.lastQuestionQuery["amount"])
	assert.Equal(t, "tok123", api.lastQuestionQuery["token"])
}

func TestFetchQuestionsPassesFilters(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api)

	_, err := client.FetchQuestions(context.Background(), QuestionQuery{
		Amount:     5,
		Category:   "9",
		Difficulty: "hard",
		Type:       "boolean",
	})
	require.NoError(t, err)

	assert.Equal(t, "5", api.lastQuestionQuery["amount"])
	assert.Equal(t, "9", api.lastQuestionQuery["category"])
	assert.Equal(t, "hard", api.lastQuestionQuery["difficulty"])
	assert.Equal(t, "boolean", api.lastQuestionQuery["type"])
}

func TestFetchQuestionsDecodesText(t *testing.T) {
	api := &fakeAPI{
		questionsHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"response_code":0,"results":[%s]}`, questionJSON)
		},
	}
	client := newTestClient(t, api)

	questions, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: 1})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, "multiple", q.Type)
	assert.Equal(t, "medium", q.Difficulty)
	assert.Equal(t, "Science & Nature", q.Category)
	assert.Equal(t, "What is H2O?", q.Question)
	assert.Equal(t, "Water", q.CorrectAnswer)
	assert.Equal(t, []string{"Oxygen", `"Air"`, "Salt"}, q.IncorrectAnswers)
}

func TestFetchQuestionsInvalidDifficulty(t *testing.T) {
	api := &fakeAPI{
		questionsHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"response_code":0,"results":[{
				"type":"multiple","difficulty":"impossible","category":"c",
				"question":"q","correct_answer":"a","incorrect_answers":[]
			}]}`)
		},
	}
	client := newTestClient(t, api)

	_, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: 1})
	require.Error(t, err)
	assert.Equal(t, "Invalid difficulty value: impossible", err.Error())
	assert.True(t, IsKind(err, KindInvalidParameter))
}

func TestFetchQuestionsTokenEmptyRetries(t *testing.T) {
	api := &fakeAPI{
		questionsHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			if call == 1 {
				fmt.Fprint(w, `{"response_code":4,"results":[]}`)
				return
			}
			fmt.Fprintf(w, `{"response_code":0,"results":[%s]}`, questionJSON)
		},
		resetHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"response_code":0,"token":"new"}`)
		},
	}
	client := newTestClient(t, api)

	questions, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: 1})
	require.NoError(t, err)
	assert.Len(t, questions, 1)

	// The token handed back by the reset replaces the held one and rides
	// along on the retried fetch.
	assert.Equal(t, "new", client.SessionToken())
	assert.Equal(t, "new", api.lastQuestionQuery["token"])

	_, reset, fetches, _ := api.counts()
	assert.Equal(t, 1, reset)
	assert.Equal(t, 2, fetches)
}

func TestFetchQuestionsTokenRetryExhausted(t *testing.T) {
	api := &fakeAPI{
		questionsHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"response_code":4,"results":[]}`)
		},
	}
	client := newTestClient(t, api)

	_, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: 1})
	require.Error(t, err)
	assert.Equal(t, "Maximum retry attempts reached for token reset", err.Error())

	// MaxTokenRetries defaults to 3: the initial fetch plus three reset
	// and retry rounds.
	_, reset, fetches, _ := api.counts()
	assert.Equal(t, 3, reset)
	assert.Equal(t, 4, fetches)
}

func TestFetchQuestionsNonTokenErrorsPropagate(t *testing.T) {
	api := &fakeAPI{
		questionsHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"response_code":1,"results":[]}`)
		},
	}
	client := newTestClient(t, api)

	_, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: 1})
	require.Error(t, err)
	assert.Equal(t, "Not enough questions available for your query", err.Error())

	_, reset, fetches, _ := api.counts()
	assert.Equal(t, 0, reset)
	assert.Equal(t, 1, fetches)
}

func TestGetJSONStatusMessages(t *testing.T) {
	tests := []struct {
		status  int
		wantMsg string
	}{
		{http.StatusBadRequest, "Request failed: Bad Request"},
		{http.StatusUnauthorized, "Request failed: Authentication required"},
		{http.StatusForbidden, "Request failed: Access denied"},
		{http.StatusNotFound, "Request failed: Resource not found"},
		{http.StatusInternalServerError, "Request failed: Internal Server Error"},
		{http.StatusBadGateway, "Request failed: Bad Gateway"},
		{http.StatusTeapot, "Request failed: HTTP 418"},
	}

	for _, tt := range tests {
		t.Run(tt.wantMsg, func(t *testing.T) {
			api := &fakeAPI{
				questionsHandler: func(call int, w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				},
			}
			client := newTestClient(t, api)

			_, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: 1})
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestGetJSONMissingResponseCode(t *testing.T) {
	// The questions and token endpoints must carry a response_code; the
	// categories endpoint never does.
	api := &fakeAPI{
		questionsHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"results":[]}`)
		},
	}
	client := newTestClient(t, api)

	_, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: 1})
	require.Error(t, err)
	assert.Equal(t, "Response code not found in API response", err.Error())

	_, err = client.FetchCategories(context.Background())
	assert.NoError(t, err)
}

func TestGetJSONInvalidJSON(t *testing.T) {
	api := &fakeAPI{
		questionsHandler: func(call int, w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json at all")
		},
	}
	client := newTestClient(t, api)

	_, err := client.FetchQuestions(context.Background(), QuestionQuery{Amount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid JSON response:")
}

func TestGetJSONConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response_code":0,"token":"tok123"}`)
	}))

	client, err := NewClient(context.Background(), Config{
		QuestionsURL: srv.URL + "/api.php",
		TokenURL:     srv.URL + "/api_token.php",
		RetryMax:     0,
		RetryWaitMin: time.Millisecond,
	}, nil)
	require.NoError(t, err)
	defer client.Close()

	srv.Close()

	_, err = client.FetchQuestions(context.Background(), QuestionQuery{Amount: 1})
	require.Error(t, err)
	assert.Equal(t, "Request failed: Connection error", err.Error())
}
