// Package assistant wires the state store, the model backend and the
// domain operations together. It is the coordinator the command line
// surface talks to: importing reading material, looking up and saving
// words, running exams and driving the tutor chat.
package assistant
