package room

import "slices"

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusMaintenance Status = "MAINTENANCE"
)

var statusLabels = map[Status]string{
	StatusAvailable:   "Available",
	StatusOccupied:    "Occupied",
	StatusMaintenance: "In Maintenance",
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	return statusLabels[s]
}

type Type string

const (
	TypeStandardClassroom   Type = "STANDARD_CLASSROOM"
	TypeLectureHall         Type = "LECTURE_HALL"
	TypeSeminarRoom         Type = "SEMINAR_ROOM"
	TypeAuditorium          Type = "AUDITORIUM"
	TypeComputerLab         Type = "COMPUTER_LAB"
	TypeScienceLab          Type = "SCIENCE_LAB"
	TypeEngineeringLab      Type = "ENGINEERING_LAB"
	TypeMedicalLab          Type = "MEDICAL_LAB"
	TypeStudyRoom           Type = "STUDY_ROOM"
	TypeGroupDiscussionRoom Type = "GROUP_DISCUSSION_ROOM"
	TypeLibraryReadingRoom  Type = "LIBRARY_READING_ROOM"
	TypeMusicRoom           Type = "MUSIC_ROOM"
	TypeArtStudio           Type = "ART_STUDIO"
	TypeDramaTheaterRoom    Type = "DRAMA_THEATER_ROOM"
	TypeRecordingStudio     Type = "RECORDING_STUDIO"
	TypeConferenceRoom      Type = "CONFERENCE_ROOM"
	TypeFacultyOffice       Type = "FACULTY_OFFICE"
	TypeExaminationRoom     Type = "EXAMINATION_ROOM"
)

var typeLabels = map[Type]string{
	TypeStandardClassroom:   "Standard Classroom",
	TypeLectureHall:         "Lecture Hall",
	TypeSeminarRoom:         "Seminar Room",
	TypeAuditorium:          "Auditorium",
	TypeComputerLab:         "Computer Lab",
	TypeScienceLab:          "Science Lab",
	TypeEngineeringLab:      "Engineering Lab",
	TypeMedicalLab:          "Medical Lab",
	TypeStudyRoom:           "Study Room",
	TypeGroupDiscussionRoom: "Group Discussion Room",
	TypeLibraryReadingRoom:  "Library Reading Room",
	TypeMusicRoom:           "Music Room",
	TypeArtStudio:           "Art Studio",
	TypeDramaTheaterRoom:    "Drama/Theater Room",
	TypeRecordingStudio:     "Recording Studio",
	TypeConferenceRoom:      "Conference Room",
	TypeFacultyOffice:       "Faculty Office",
	TypeExaminationRoom:     "Examination Room",
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t Type) Label() string {
	return typeLabels[t]
}

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusAvailable, StatusOccupied, StatusMaintenance}
}

// SortedTypes lists every type code alphabetically.
func SortedTypes() []Type {
	out := make([]Type, 0, len(typeLabels))
	for t := range typeLabels {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
