package model

// Profile is the authored description shown for a winning dimension.
type Profile struct {
	Dimension Dimension `json:"dimension" yaml:"dimension" bson:"dimension" validate:"required"`
	Title     string    `json:"title" yaml:"title" bson:"title" validate:"required"`
	OneLiner  string    `json:"oneLiner" yaml:"oneLiner" bson:"oneLiner" validate:"required"`
	Strengths []string  `json:"strengths" yaml:"strengths" bson:"strengths" validate:"min=1,dive,required"`
	Cautions  []string  `json:"cautions" yaml:"cautions" bson:"cautions" validate:"min=1,dive,required"`
	Questions []string  `json:"questions" yaml:"questions" bson:"questions" validate:"len=3,dive,required"`
	Actions   []string  `json:"actions" yaml:"actions" bson:"actions" validate:"len=3,dive,required"`
}

// ContentBundle is the authored question bank plus result table, as stored.
type ContentBundle struct {
	Version   string        `json:"version" yaml:"version" bson:"version"`
	Questions []RawQuestion `json:"questions" yaml:"questions" bson:"questions"`
	Profiles  []Profile     `json:"profiles" yaml:"profiles" bson:"profiles"`
}
