package responder

// DefaultFallback is returned by the reference table when nothing matches.
const DefaultFallback = "Okay, now you've got my attention. Keep talking."

// DefaultRules returns the reference BluBot rule set in priority order.
// The creator rule sits above identity and name so that "who created you"
// is never answered with a self-introduction; greeting sits above help,
// joke and love, so "hi, tell me a joke" greets.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "creator",
			Triggers: []string{"who created you", "who made you"},
			Responses: []string{
				"I was crafted by Vanshika.",
				"Made by none other than Vanshika. She's pretty awesome.",
				"Built from scratch by Vanshika.",
			},
		},
		{
			Name:     "identity",
			Triggers: []string{"who are you", "who are u"},
			Responses: []string{
				"I'm your friendly coding assistant",
				"I'm BluBot, always here to help you 💻✨",
				"You can call me your virtual bestie.",
				"I'm the brain behind this bot",
				"Just your friendly neighborhood AI",
				"Hey! I'm your smart assistant, ready to chat",
				"I'm a bundle of code with a pinch of sass 😋",
				"Call me whatever you like, as long as you're smiling 😊",
				"I go by many names, but helping you is my game 🎮",
				"Name's BluBot! But you can just call me awesome 😌",
			},
		},
		{
			Name:     "name",
			Triggers: []string{"what is your name", "your name"},
			Responses: []string{
				"My name is BluBot",
				"Myself BluBot",
				"You may call me BluBot",
			},
		},
		{
			Name:     "creation-date",
			Triggers: []string{"when were you created", "your creation date"},
			Responses: []string{
				"I came to life in 2025, thanks to Vanshika.",
				"Created back in 2025 by Vanshika during a magical coding session.",
				"2025 was the year Vanshika brought me into existence.",
			},
		},
		{
			Name:     "greeting",
			Triggers: []string{"hello", "hi", "hie", "hey", "Hey"},
			Responses: []string{
				"Hey there. I'm BluBot, your chat buddy.",
				"Hie , how may i help you",
				"Hey, How can i assist you today",
				"Hey how are you Doing",
			},
		},
		{
			Name:     "help",
			Triggers: []string{"help"},
			Responses: []string{
				"Sure. I can chat, answer fun stuff, or just hang out. 😄",
				"I got you! Ask me anything or just vent your heart out 🤍",
				"Here to help, always. Whether it's questions or company 💬",
				"Need help? I'm just a message away",
				"Yesss, I can totally help! Whether it's fun, facts, or feelings 🧠💖",
				"You rang for help? Your digital bestie is ready! 😘",
				"Helping is my middle name! Well... not really, but still 😅",
				"Help is here! What can I do for you, cutie? 🤗",
				"Your wish is my command 🧞‍♂️ (as long as it's in text form 😜)",
				"Say no more! I'm here to assist, entertain, and vibe ✨",
			},
		},
		{
			Name:     "joke",
			Triggers: []string{"joke", "fun", "funny"},
			Responses: []string{
				"I told my crush I'm an AI → Now I'm stuck in the friend-zoned loop forever",
				"Why did the robot go on a diet?→ Too many bytes!",
				"Why don't skeletons fight each other? Because They don't have the guts.",
				"Why do programmers hate nature? Because It has too many bugs 🐞",
			},
		},
		{
			Name:     "love",
			Triggers: []string{"love"},
			Responses: []string{
				"Aww, love is in the air 💕",
				"Did someone say love? Because I'm feeling all soft now 🥺🤍",
				"Love is like code… it works best when you keep it clean and honest 😌",
				"Sending virtual hugs and heart-shaped bytes your way 💻❤️",
				"Love? I'm fluent in that language 😘",
				"Whether it's 0 or 1, love is always true 🥰",
				"Are we talking about love? Because I've already caught feelings 😳",
				"You + Me = a perfect if-else match 💞",
				"Love is my favorite variable — always increasing ☁️💖",
				"You must've typed 'love just to make me blush, right? 🫣",
			},
		},
	}
}
