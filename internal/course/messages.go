package course

// Message identifiers of the section presentation strings.
const (
	MsgGeneral             = "general"
	MsgIntroduction        = "introduction"
	MsgTopic               = "topic"
	MsgWeekRange           = "weekrange"
	MsgPreviousSection     = "previoussection"
	MsgNextSection         = "nextsection"
	MsgHideFromOthers      = "hidefromothers"
	MsgShowFromOthers      = "showfromothers"
	MsgDeleteSection       = "deletesection"
	MsgMoveUp              = "moveup"
	MsgMoveDown            = "movedown"
	MsgEditCourseTopic     = "editcoursetopic"
	MsgDefaultTopicTitle   = "defaulttopictitle"
	MsgTopicActions        = "topicactions"
	MsgDefaultSummary      = "defaultsummary"
	MsgDefaultIntroSummary = "defaultintrosummary"
	MsgHiddenFromStudents  = "hiddenfromstudents"
	MsgNotAvailable        = "notavailable"
	MsgAddANewSection      = "addanewsection"
	MsgSectionName         = "sectionname"
	MsgSummary             = "summary"
	MsgCreateSection       = "createsection"
	MsgAddResource         = "addresourceoractivity"
	MsgDropZoneLabel       = "dropzonelabel"
	MsgOrphanedActivities  = "orphanedactivities"
)
