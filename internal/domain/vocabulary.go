package domain

// Canonical vocabularies. These are configuration data shared by the signup
// and search flows; values outside them are custom entries.
var vocabularies = map[Category][]string{
	CategoryInterests: {
		"Food & Dining", "Nightlife", "Art & Museums", "Music", "History",
		"Outdoors", "Photography", "Sports", "Fitness", "Beaches", "Shopping",
		"Architecture", "Wine & Craft Beer", "Coffee Culture", "Film", "Theater",
		"Technology", "Volunteering", "Fashion", "Gaming", "Books",
		"Yoga & Wellness", "Cooking", "Local Culture",
	},
	CategoryActivities: {
		"Hiking", "Walking Tours", "Biking", "Surfing", "Snorkeling & Diving",
		"Skiing", "Kayaking", "Running", "Rock Climbing", "Camping",
		"Road Trips", "Bar Hopping", "Live Music", "Cooking Classes",
		"Language Exchange", "Board Games", "Sightseeing", "Day Trips",
		"Food Tours", "Dancing",
	},
	CategoryEvents: {
		"Concerts", "Festivals", "Sporting Events", "Art Exhibitions",
		"Food Festivals", "Meetups", "Networking Events", "Comedy Shows",
		"Theater Performances", "Holiday Celebrations", "Markets",
		"Conferences", "Pride Events", "Film Screenings",
	},
	CategoryLanguages: {
		"English", "Spanish", "French", "German", "Italian", "Portuguese",
		"Mandarin", "Cantonese", "Japanese", "Korean", "Arabic", "Hindi",
		"Russian", "Dutch", "Swedish", "Turkish", "Greek", "Hebrew",
		"Vietnamese", "Tagalog", "American Sign Language",
	},
	CategoryGender: {
		"Male", "Female", "Non-binary", "Transgender", "Other",
	},
	CategorySexualPreference: {
		"Straight", "Gay", "Lesbian", "Bisexual", "Pansexual", "Asexual",
		"Queer", "Other",
	},
	CategoryUserType: {
		string(UserTypeLocal), string(UserTypeTraveler), string(UserTypeBusiness),
	},
	CategoryTravelerType: {
		"Solo", "Couple", "Family", "Group", "Backpacker", "Business Traveler",
		"Digital Nomad", "Student",
	},
	CategoryMilitaryStatus: {
		"Active Duty", "Veteran", "Military Family", "None",
	},
}

// topChoices are the "top choices" quick-select groups shown above the full list.
var topChoices = map[Category][]string{
	CategoryInterests: {
		"Food & Dining", "Nightlife", "Art & Museums", "Music", "Outdoors",
		"Photography", "Beaches", "Local Culture",
	},
	CategoryActivities: {
		"Hiking", "Walking Tours", "Biking", "Bar Hopping", "Live Music",
		"Sightseeing", "Food Tours",
	},
	CategoryEvents: {
		"Concerts", "Festivals", "Food Festivals", "Meetups", "Markets",
	},
	CategoryLanguages: {
		"English", "Spanish", "French", "Portuguese", "Mandarin",
	},
}
