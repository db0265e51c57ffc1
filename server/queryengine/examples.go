package queryengine

// ExampleQuestions returns the canonical example questions used to seed
// UI hints and fallback guidance. Every recognized intent is represented.
func ExampleQuestions() []string {
	return []string{
		"Tell me about kml_1001",
		"Top 10 parcels by annual energy",
		"Which parcels have a hawker centre?",
		"How many parcels are High Density?",
		"Average transit index",
		"Compare High Density and Peripheral",
		"What is connected to kml_2001?",
		"Tell me about the Lifestyle Hub category",
		"How are parcels classified?",
		"Give me an overview of the dataset",
		"What facility types exist?",
		"What connection types are there?",
	}
}
