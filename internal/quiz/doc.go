// Package quiz generates vocabulary quizzes and exams through the model
// backend, validates them, grades answered exams into results and drives
// the periodic surprise-quiz prompt.
package quiz
