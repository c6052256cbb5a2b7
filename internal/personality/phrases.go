package personality

import "fmt"

type phrases struct {
	HorseChance float64 `yaml:"horse_chance"`
	Greeting    struct {
		First     string `yaml:"first"`
		Returning string `yaml:"returning"`
	} `yaml:"greeting"`
	GoalSetting struct {
		BasicName string `yaml:"basic_name"`
		Name      string `yaml:"name"`
		Body      string `yaml:"body"`
	} `yaml:"goal_setting"`
	TaskCreation map[string]string `yaml:"task_creation"`
	Payment      struct {
		Head      string `yaml:"head"`
		HorseLine string `yaml:"horse_line"`
		Body      string `yaml:"body"`
		Accepted  string `yaml:"accepted"`
		Declined  string `yaml:"declined"`
	} `yaml:"payment_prompt"`
	Celebration struct {
		Long      string `yaml:"long"`
		LongHorse string `yaml:"long_horse"`
		Short     string `yaml:"short"`
		Record    string `yaml:"record"`
	} `yaml:"celebration"`
	Reminder struct {
		First         string `yaml:"first"`
		FirstHorse    string `yaml:"first_horse"`
		Running       string `yaml:"running"`
		FooterLong    string `yaml:"footer_long"`
		FooterRunning string `yaml:"footer_running"`
		FooterFirst   string `yaml:"footer_first"`
	} `yaml:"reminder"`
	Missed struct {
		One      string `yaml:"one"`
		Few      string `yaml:"few"`
		FewHorse string `yaml:"few_horse"`
		Many     string `yaml:"many"`
	} `yaml:"missed"`
	Completion struct {
		VerifiedHigh      []string `yaml:"verified_high"`
		VerifiedHighHorse []string `yaml:"verified_high_horse"`
		VerifiedLow       string   `yaml:"verified_low"`
		Rejected          []string `yaml:"rejected"`
	} `yaml:"completion"`
	Motivation      []string          `yaml:"motivation"`
	MotivationHorse []string          `yaml:"motivation_horse"`
	RealityCheck    []string          `yaml:"reality_check"`
	Help            string            `yaml:"help"`
	Errors          map[string]string `yaml:"errors"`
}

// check rejects tables that would make a pick panic or return nothing.
func (p phrases) check() error {
	lists := map[string][]string{
		"completion.verified_high":       p.Completion.VerifiedHigh,
		"completion.verified_high_horse": p.Completion.VerifiedHighHorse,
		"completion.rejected":            p.Completion.Rejected,
		"motivation":                     p.Motivation,
		"motivation_horse":               p.MotivationHorse,
		"reality_check":                  p.RealityCheck,
	}
	for key, l := range lists {
		if len(l) == 0 {
			return fmt.Errorf("personality: %s is empty", key)
		}
	}
	if _, ok := p.TaskCreation[string(GoalGeneral)]; !ok {
		return fmt.Errorf("personality: task_creation.general is missing")
	}
	if _, ok := p.Errors[string(ErrorGeneral)]; !ok {
		return fmt.Errorf("personality: errors.general is missing")
	}
	if p.HorseChance < 0 || p.HorseChance > 1 {
		return fmt.Errorf("personality: horse_chance %v out of range", p.HorseChance)
	}
	return nil
}
