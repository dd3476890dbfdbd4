package analysis

import "fmt"

// ActivityStreamSystemPrompt describes the JSONL export format to the model
// before an analysis request. Update this text centrally so every provider
// receives the same framing.
const ActivityStreamSystemPrompt = `You are a sports scientist and data analyst. Analyze the provided JSONL activity stream data.
Each JSON line represents one activity with metadata (distance, time, etc.), sampled streams, and pre-computed quantiles. All the activities were performed by a single person, using multiple wearable devices.
There are in total 3 types of activities: Running, Stair Climbing and Idle Resting.
The running activities have 2 further subtypes: Higher paced running, and Lower paced running. These activities all have "Running" in their name.
Lower paced running activities have an odd number in their name, right after the "Running" in their name.
Higher paced running activities have an even number in their name, right after the "Running" in their name.
Stair Climbing activities have "Treppe" in their name.
Idle Resting activities have "Rest" in their name.
The running activities were performed in successive rounds, with each round starting with a lower paced running activity followed by a higher paced running activity and ending with a rest activity.
The stair climbing activities were performed separately, a bit before the running activities.
All activities have a JSON object with the key "streams_compact" that contains the sampled streams.
The running activities streams are filtered before sampling to include only the points where movement was detected.
Furthermore, the running activities JSONs include pace and velocity data, unlike the stair climbing and the rest activities.
Identify patterns, compare activity types (Running, Treppe, Rest), and give insights.`

// AnalysisRequest returns the default user prompt for an export containing
// the given number of activities.
func AnalysisRequest(activityCount int) string {
	return fmt.Sprintf(`The attached JSONL file contains %d activities.
Please summarize:
1. Overall trends (distance, heart rate, cadence, altitude).
2. Differences between activity types (Running vs. Treppe vs. Rest).
3. Any outliers or unusual sessions.
4. Your assessment of the person's fitness.
5. Recommendations for training focus to improve the person's fitness.

If present, use quantiles to describe distributions.`, activityCount)
}
