package engine

import "github.com/tatianab/lifesim/internal/models"

// Question is one bank entry: a prompt, its answer and the wrong choices.
type Question struct {
	Prompt    string
	Correct   string
	Incorrect []string
}

// entranceQuestions is the general knowledge pool for the entrance exam.
var entranceQuestions = []Question{
	{"What is 12 x 12?", "144", []string{"124", "132", "154"}},
	{"Which planet is closest to the sun?", "Mercury", []string{"Venus", "Mars", "Earth"}},
	{"What is the capital of France?", "Paris", []string{"Lyon", "Rome", "Madrid"}},
	{"How many continents are there?", "7", []string{"5", "6", "8"}},
	{"What gas do plants absorb?", "Carbon dioxide", []string{"Oxygen", "Nitrogen", "Helium"}},
	{"Who painted the Mona Lisa?", "Da Vinci", []string{"Picasso", "Van Gogh", "Monet"}},
	{"What is the square root of 81?", "9", []string{"8", "7", "11"}},
	{"Which ocean is the largest?", "Pacific", []string{"Atlantic", "Indian", "Arctic"}},
	{"What is the boiling point of water in Celsius?", "100", []string{"90", "110", "212"}},
}

// finalQuestions holds two questions per college year for each major.
var finalQuestions = map[models.Major][4][]Question{
	models.MajorCompSci: {
		{
			{"Basic unit of a computer?", "Bit", []string{"Byte", "Word", "Nibble"}},
			{"File type for web pages?", "HTML", []string{"CSS", "XML", "JSON"}},
		},
		{
			{"Type of volatile memory?", "RAM", []string{"ROM", "SSD", "HDD"}},
			{"Binary value of 7?", "111", []string{"011", "101", "110"}},
		},
		{
			{"Type of loop structure?", "For", []string{"If", "Case", "Switch"}},
			{"SQL data retrieval command?", "Select", []string{"Insert", "Update", "Delete"}},
		},
		{
			{"Programming for objects?", "OOP", []string{"POP", "AOP", "SOP"}},
			{"Web page styling language?", "CSS", []string{"HTML", "JS", "PHP"}},
		},
	},
	models.MajorHistory: {
		{
			{"When did the US Civil War end?", "1865", []string{"1870", "1860", "1855"}},
			{"Who wrote the Declaration of Independence?", "Jefferson", []string{"Adams", "Washington", "Franklin"}},
		},
		{
			{"When was the French Revolution?", "1789", []string{"1790", "1800", "1795"}},
			{"Who was the first President of the United States?", "Washington", []string{"Jefferson", "Adams", "Madison"}},
		},
		{
			{"When did World War I begin?", "1914", []string{"1915", "1916", "1917"}},
			{"Who discovered America?", "Columbus", []string{"Magellan", "Vespucci", "Cabot"}},
		},
		{
			{"When did the Berlin Wall fall?", "1989", []string{"1990", "1991", "1988"}},
			{"Who was the British Prime Minister during WWII?", "Churchill", []string{"Thatcher", "Blair", "Chamberlain"}},
		},
	},
	models.MajorBiology: {
		{
			{"What is the powerhouse of the cell?", "Mitochondria", []string{"Nucleus", "Ribosome", "Lysosome"}},
			{"What is the chemical formula for water?", "H2O", []string{"CO2", "O2", "NaCl"}},
		},
		{
			{"What is the main pigment in plants?", "Chlorophyll", []string{"Carotene", "Xanthophyll", "Anthocyanin"}},
			{"What is the basic unit of life?", "Cell", []string{"Tissue", "Organ", "System"}},
		},
		{
			{"What process converts glucose into energy?", "Respiration", []string{"Photosynthesis", "Glycolysis", "Digestion"}},
			{"What is the largest organ in the human body?", "Skin", []string{"Liver", "Heart", "Kidney"}},
		},
		{
			{"What is the study of heredity?", "Genetics", []string{"Ecology", "Evolution", "Anatomy"}},
			{"What is the genetic material in cells?", "DNA", []string{"RNA", "Protein", "Lipid"}},
		},
	},
}
