package vark

import (
	"math"
	"sort"
)

// SurveyAnswer is one selectable answer and the mode it indicates.
type SurveyAnswer struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Mode Mode   `json:"style"`
}

// SurveyQuestion is one question of the learning-style survey.
type SurveyQuestion struct {
	ID      string         `json:"id"`
	Text    string         `json:"question"`
	Answers []SurveyAnswer `json:"answers"`
}

// Answers maps question IDs to the chosen answer ID.
type Answers map[string]string

// SurveyResult is the scored survey.
type SurveyResult struct {
	Counts         map[Mode]int `json:"counts"`
	Answered       int          `json:"answered"`
	Scores         Profile      `json:"scores"`
	DominantStyles [2]Mode      `json:"dominantStyles"`
	DominantStyle  string       `json:"dominantStyle"`
	SecondaryStyle string       `json:"secondaryStyle"`
	Description    string       `json:"description"`
}

var descriptions = map[Mode]string{
	Visual:      "You learn best through visual information like diagrams, maps, charts, and images. You enjoy seeing concepts presented visually and benefit from color-coding and visual representations.",
	Auditory:    "You learn best through listening and discussion. You prefer verbal explanations, enjoy conversations, and benefit from hearing concepts explained out loud.",
	Reading:     "You learn best through reading and writing. You prefer detailed text-based information, written explanations, and structured note-taking.",
	Kinesthetic: "You learn best through doing and hands-on practice. You understand concepts better by experiencing them physically and learning by trying things out.",
}

// Describe returns the description for a mode.
func Describe(m Mode) string {
	return descriptions[m]
}

// SurveyQuestions returns a copy of the survey.
func SurveyQuestions() []SurveyQuestion {
	out := make([]SurveyQuestion, len(surveyQuestions))
	for i, q := range surveyQuestions {
		q.Answers = append([]SurveyAnswer(nil), q.Answers...)
		out[i] = q
	}
	return out
}

// ScoreSurvey counts one point per recognized answer and converts the
// counts to integer percentages summing to 100 by the largest-remainder
// method. Unknown questions and answers are ignored. With no valid answers
// the uniform profile is returned.
func ScoreSurvey(answers Answers) SurveyResult {
	counts := make(map[Mode]int, len(Modes))
	for _, m := range Modes {
		counts[m] = 0
	}
	answered := 0
	for _, q := range surveyQuestions {
		chosen, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, a := range q.Answers {
			if a.ID == chosen {
				counts[a.Mode]++
				answered++
				break
			}
		}
	}

	scores := Default()
	if answered > 0 {
		weights := make([]float64, len(Modes))
		for i, m := range Modes {
			weights[i] = float64(counts[m])
		}
		for i, n := range Apportion(weights, 100) {
			scores = scores.With(Modes[i], float64(n))
		}
	}

	primary, secondary := scores.Dominant()
	return SurveyResult{
		Counts:         counts,
		Answered:       answered,
		Scores:         scores,
		DominantStyles: [2]Mode{primary, secondary},
		DominantStyle:  primary.Title(),
		SecondaryStyle: secondary.Title(),
		Description:    descriptions[primary],
	}
}

// Apportion splits total into integer parts proportional to weights using
// the largest-remainder method. Leftover units go to the largest fractional
// parts, ties resolved by index. Negative or non-finite weights count as 0;
// if every weight is 0 the result is all zeros.
func Apportion(weights []float64, total int) []int {
	out := make([]int, len(weights))
	if total <= 0 || len(weights) == 0 {
		return out
	}
	var sum float64
	clean := make([]float64, len(weights))
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			w = 0
		}
		clean[i] = w
		sum += w
	}
	if sum <= 0 {
		return out
	}

	type part struct {
		idx  int
		frac float64
	}
	parts := make([]part, len(clean))
	assigned := 0
	for i, w := range clean {
		exact := w / sum * float64(total)
		whole := math.Floor(exact)
		out[i] = int(whole)
		assigned += out[i]
		parts[i] = part{idx: i, frac: exact - whole}
	}
	sort.SliceStable(parts, func(a, b int) bool { return parts[a].frac > parts[b].frac })
	for i := 0; assigned < total; i++ {
		out[parts[i%len(parts)].idx]++
		assigned++
	}
	return out
}

var surveyQuestions = []SurveyQuestion{
	{
		ID:   "q1",
		Text: "You are helping someone who wants to go to your airport, town center or railway station. You would:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "draw, or trace a map on paper", Mode: Visual},
			{ID: "b", Text: "tell them the directions", Mode: Auditory},
			{ID: "c", Text: "write down the directions (without a map)", Mode: Reading},
			{ID: "d", Text: "go with them and show the way", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q2",
		Text: "A group of tourists has been assigned to you. You would:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "show them the sights, beaches and parks", Mode: Kinesthetic},
			{ID: "b", Text: "tell them about the interesting history and stories", Mode: Auditory},
			{ID: "c", Text: "give them a map and suggested tour sites", Mode: Visual},
			{ID: "d", Text: "describe routes and print out information", Mode: Reading},
		},
	},
	{
		ID:   "q3",
		Text: "You are planning a holiday for a group. You would:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "use a map and check the roads and travel times", Mode: Visual},
			{ID: "b", Text: "phone up and talk to a travel agent", Mode: Auditory},
			{ID: "c", Text: "gather written details about destinations", Mode: Reading},
			{ID: "d", Text: "visit the places yourself", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q4",
		Text: "You want to learn about a new software on your computer. You would:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "go through the diagrams in the book that came with it", Mode: Visual},
			{ID: "b", Text: "talk to the help desk and ask questions", Mode: Auditory},
			{ID: "c", Text: "read the written instructions", Mode: Reading},
			{ID: "d", Text: "start using the software and learn by trial and error", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q5",
		Text: "I learn best when the teacher:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "uses demonstrations, models or videos", Mode: Visual},
			{ID: "b", Text: "gives me lectures and time for discussion", Mode: Auditory},
			{ID: "c", Text: "gives me printed information and references", Mode: Reading},
			{ID: "d", Text: "allows me to practice and experiment", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q6",
		Text: "I prefer to learn new information by:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "watching and observing", Mode: Visual},
			{ID: "b", Text: "listening and discussing", Mode: Auditory},
			{ID: "c", Text: "reading and writing", Mode: Reading},
			{ID: "d", Text: "doing and practicing", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q7",
		Text: "When I am at a party, I:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "notice people's appearance and surroundings", Mode: Visual},
			{ID: "b", Text: "listen to and talk with others", Mode: Auditory},
			{ID: "c", Text: "enjoy reading the hosts' books and checking out the music CDs", Mode: Reading},
			{ID: "d", Text: "move around and help the host", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q8",
		Text: "I understand something best when I have:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "a diagram or picture", Mode: Visual},
			{ID: "b", Text: "heard it explained", Mode: Auditory},
			{ID: "c", Text: "read about it", Mode: Reading},
			{ID: "d", Text: "tried it out", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q9",
		Text: "At a work place or college, I learn to operate a new machine by:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "watching what the instructor does", Mode: Visual},
			{ID: "b", Text: "listening to an explanation of how it operates", Mode: Auditory},
			{ID: "c", Text: "reading the operating manual", Mode: Reading},
			{ID: "d", Text: "practicing with the machine", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q10",
		Text: "I prefer to receive new information as:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "a picture, drawing or diagram", Mode: Visual},
			{ID: "b", Text: "a verbal explanation", Mode: Auditory},
			{ID: "c", Text: "a written description", Mode: Reading},
			{ID: "d", Text: "a practical experience", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q11",
		Text: "I read:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "comics, magazines with pictures and action", Mode: Visual},
			{ID: "b", Text: "novels, stories with dialogue and conversation", Mode: Auditory},
			{ID: "c", Text: "factual articles and detailed information", Mode: Reading},
			{ID: "d", Text: "things where I can participate or do activities", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q12",
		Text: "To remember something new, I like to:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "create a mental picture", Mode: Visual},
			{ID: "b", Text: "say it aloud or discuss it", Mode: Auditory},
			{ID: "c", Text: "write it down several times", Mode: Reading},
			{ID: "d", Text: "do it or act it out", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q13",
		Text: "I concentrate best when there is:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "no sound", Mode: Visual},
			{ID: "b", Text: "talking and listening", Mode: Auditory},
			{ID: "c", Text: "reading material available", Mode: Reading},
			{ID: "d", Text: "the chance to move about", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q14",
		Text: "I enjoy:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "visual presentations like slideshows and films", Mode: Visual},
			{ID: "b", Text: "listening to music and podcasts", Mode: Auditory},
			{ID: "c", Text: "reading books and articles", Mode: Reading},
			{ID: "d", Text: "physical activities and sports", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q15",
		Text: "In my spare time, I like to:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "watch videos or look at pictures", Mode: Visual},
			{ID: "b", Text: "listen to music or podcasts", Mode: Auditory},
			{ID: "c", Text: "read books or articles", Mode: Reading},
			{ID: "d", Text: "exercise or play sports", Mode: Kinesthetic},
		},
	},
	{
		ID:   "q16",
		Text: "When meeting someone new, I am most likely to:",
		Answers: []SurveyAnswer{
			{ID: "a", Text: "notice their appearance and expressions", Mode: Visual},
			{ID: "b", Text: "listen to their voice and what they say", Mode: Auditory},
			{ID: "c", Text: "look at how they are dressed and their mannerisms", Mode: Reading},
			{ID: "d", Text: "shake their hand or move closer to them", Mode: Kinesthetic},
		},
	},
}
