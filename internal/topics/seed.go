// This file holds the built-in seed collection used when no snapshot exists.
package topics

import "github.com/mesh-intelligence/topics/pkg/types"

// builtInTopics is the fixed seed collection, in display order. Bundled
// images are asset references; the JavaScript entry has always used a URL.
var builtInTopics = []types.Topic{
	{
		ID:   "1",
		Name: "HTML",
		Links: []string{
			"https://developer.mozilla.org/en-US/docs/Web/HTML",
			"https://www.w3schools.com/html/",
			"https://www.codecademy.com/learn/learn-html",
		},
		Image: types.AssetImage("html.png"),
	},
	{
		ID:    "2",
		Name:  "CSS",
		Links: []string{"https://developer.mozilla.org/en-US/docs/Web/CSS"},
		Image: types.AssetImage("css.png"),
	},
	{
		ID:    "3",
		Name:  "JavaScript",
		Links: []string{"https://developer.mozilla.org/en-US/docs/Web/JavaScript"},
		Image: "https://upload.wikimedia.org/wikipedia/commons/6/6a/JavaScript-logo.png",
	},
	{
		ID:    "4",
		Name:  "React",
		Links: []string{"https://reactjs.org/docs/getting-started.html"},
		Image: types.AssetImage("react-logo.png"),
	},
	{
		ID:    "5",
		Name:  "React Native",
		Links: []string{"https://reactnative.dev/docs/getting-started"},
		Image: types.AssetImage("react-logo.png"),
	},
	{
		ID:   "6",
		Name: "Data Structures & Algorithms",
		Links: []string{
			"https://www.geeksforgeeks.org/data-structures/",
			"https://leetcode.com/study-plan/algorithm/",
		},
		Image: types.AssetImage("dsa.png"),
	},
	{
		ID:   "7",
		Name: "Artificial Intelligence & Machine Learning",
		Links: []string{
			"https://www.turing.com/kb/what-is-machine-learning",
			"https://towardsdatascience.com/introduction-to-artificial-intelligence-ai-and-machine-learning-ml-6df4fc07b64b",
		},
		Image: types.AssetImage("ai_ml.png"),
	},
	{
		ID:   "8",
		Name: "Blockchain & Cryptocurrencies",
		Links: []string{
			"https://www.ibm.com/topics/what-is-blockchain",
			"https://www.coindesk.com/learn/what-is-bitcoin",
		},
		Image: types.AssetImage("blockchain.jpg"),
	},
	{
		ID:   "9",
		Name: "Cloud Computing & DevOps",
		Links: []string{
			"https://azure.microsoft.com/en-us/overview/what-is-cloud-computing/",
			"https://www.redhat.com/en/topics/devops/what-is-devops",
		},
		Image: types.AssetImage("cloud_devops.png"),
	},
	{
		ID:   "10",
		Name: "Cybersecurity & Ethical Hacking",
		Links: []string{
			"https://www.coursera.org/articles/ethical-hacking",
			"https://www.cybrary.it/skill-certification/ethical-hacking/",
		},
		Image: types.AssetImage("cybersecurity.png"),
	},
}

// Seed returns a fresh copy of the built-in collection. Callers may mutate
// the result freely.
func Seed() []types.Topic {
	return cloneTopics(builtInTopics)
}

func cloneTopics(in []types.Topic) []types.Topic {
	out := make([]types.Topic, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
